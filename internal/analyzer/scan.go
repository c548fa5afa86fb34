package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/SamyaDeb/AlgoMint/internal/parse"
)

// The behavior scanner is a heuristic pass over each member body. Guard,
// call, and event detection walk the syntax tree; storage access and inner
// transactions match rule tables against the body's source text. This is
// pattern matching, not dataflow analysis: assigning a state reference to a
// local before mutating it is not tracked and under-reports accesses.

type accessMode int

const (
	accessRead accessMode = iota
	accessWrite
	accessReadWrite
)

// accessRules maps syntactic shapes to the storage access they imply.
// %s is the regexp-escaped variable name. Augmented assignment shapes are
// listed first: they count as both a read and a write and override the
// plain-write classification.
var accessRules = []struct {
	mode    accessMode
	pattern string
}{
	{accessReadWrite, `self\.%s\s*[+\-*/|&^]=`},
	{accessReadWrite, `self\.%s\.value\s*[+\-*/|&^]=`},

	{accessWrite, `self\.%s\.value\s*[+\-*/|&^]?=`},
	{accessWrite, `self\.%s\s*[+\-*/|&^]?=`},
	{accessWrite, `self\.%s\.set\(`},
	{accessWrite, `self\.%s\[.*?\]\s*[+\-*/|&^]?=`},
	{accessWrite, `self\.%s\.value\[.*?\]\s*[+\-*/|&^]?=`},

	{accessRead, `self\.%s\.value`},
	{accessRead, `self\.%s\.get\(`},
	{accessRead, `self\.%s\[`},
	// Operator operands. Comparison operators are spelled out so a plain
	// assignment's = stays write-only.
	{accessRead, `self\.%s\s*(?:[+\-*/><&|^%%]|[!=]=)`},
	{accessRead, `self\.%s\s*\)`},
	{accessRead, `\(self\.%s`},
	{accessRead, `return.*self\.%s`},
	{accessRead, `assert.*self\.%s`},
	{accessRead, `self\.%s\s*,`},
	{accessRead, `,\s*self\.%s`},
	{accessRead, `arc4\.\w+\(self\.%s`},
}

type compiledRule struct {
	mode accessMode
	re   *regexp.Regexp
}

// varMatcher holds the compiled access rules for one state variable.
// Matchers preserve state-variable discovery order so scan results are
// deterministic.
type varMatcher struct {
	name  string
	rules []compiledRule
}

func compileAccessRules(stateVars []string) []varMatcher {
	matchers := make([]varMatcher, 0, len(stateVars))
	for _, name := range stateVars {
		escaped := regexp.QuoteMeta(name)
		rules := make([]compiledRule, 0, len(accessRules))
		for _, r := range accessRules {
			rules = append(rules, compiledRule{
				mode: r.mode,
				re:   regexp.MustCompile(fmt.Sprintf(r.pattern, escaped)),
			})
		}
		matchers = append(matchers, varMatcher{name: name, rules: rules})
	}
	return matchers
}

// innerTxnRe matches the fixed vocabulary of inner-transaction constructors.
var innerTxnRe = regexp.MustCompile(
	`\b(itxn\.Payment|itxn\.AssetTransfer|itxn\.ApplicationCall|` +
		`itxn\.AssetConfig|itxn\.KeyRegistration|itxn\.AssetFreeze|` +
		`InnerTransaction|itxn\.submit)\b`)

var innerTxnTypes = map[string]string{
	"itxn.Payment":         "Payment",
	"itxn.AssetTransfer":   "AssetTransfer",
	"itxn.ApplicationCall": "ApplicationCall",
	"itxn.AssetConfig":     "AssetConfig",
	"itxn.KeyRegistration": "KeyRegistration",
	"itxn.AssetFreeze":     "AssetFreeze",
	"InnerTransaction":     "InnerTransaction",
	"itxn.submit":          "InnerTransaction",
}

type bodyFacts struct {
	guards    int
	reads     []string
	writes    []string
	calls     []string
	innerTxns []string
	events    []string
}

// scanBody collects the behavior facts for one member body.
func scanBody(body *sitter.Node, source []byte, matchers []varMatcher) bodyFacts {
	facts := bodyFacts{
		reads:     []string{},
		writes:    []string{},
		calls:     []string{},
		innerTxns: []string{},
		events:    []string{},
	}
	if body == nil {
		return facts
	}

	bodyText := parse.NodeText(body, source)

	facts.reads, facts.writes = findStorageAccess(bodyText, matchers)
	facts.innerTxns = findInnerTxns(bodyText)

	seenCalls := map[string]struct{}{}
	seenEvents := map[string]struct{}{}

	parse.Walk(body, func(n *sitter.Node) {
		switch n.Type() {
		case "assert_statement":
			facts.guards++
		case "call":
			callee := n.ChildByFieldName("function")
			if callee == nil {
				return
			}
			name := parse.DottedName(callee, source)

			if strings.Contains(name, "op.err") || strings.Contains(name, "op.exit") {
				facts.guards++
			}

			if method, ok := strings.CutPrefix(name, "self."); ok && !strings.Contains(method, ".") {
				if _, dup := seenCalls[method]; !dup {
					seenCalls[method] = struct{}{}
					facts.calls = append(facts.calls, method)
				}
			}

			if strings.Contains(name, "emit") {
				if ev, ok := eventName(n, source); ok {
					if _, dup := seenEvents[ev]; !dup {
						seenEvents[ev] = struct{}{}
						facts.events = append(facts.events, ev)
					}
				}
			}
		}
	})

	return facts
}

// findStorageAccess applies the access rule table to the body text for each
// known state variable, in discovery order.
func findStorageAccess(bodyText string, matchers []varMatcher) (reads, writes []string) {
	reads, writes = []string{}, []string{}

	for _, m := range matchers {
		var isRead, isWrite, isAugmented bool
		for _, rule := range m.rules {
			if !rule.re.MatchString(bodyText) {
				continue
			}
			switch rule.mode {
			case accessReadWrite:
				isAugmented = true
			case accessWrite:
				isWrite = true
			case accessRead:
				isRead = true
			}
		}

		switch {
		case isAugmented:
			reads = append(reads, m.name)
			writes = append(writes, m.name)
		default:
			if isWrite {
				writes = append(writes, m.name)
			}
			if isRead {
				reads = append(reads, m.name)
			}
		}
	}
	return reads, writes
}

// findInnerTxns returns the distinct inner-transaction types issued in the
// body, in first-seen order.
func findInnerTxns(bodyText string) []string {
	found := []string{}
	seen := map[string]struct{}{}
	for _, match := range innerTxnRe.FindAllString(bodyText, -1) {
		txnType, ok := innerTxnTypes[match]
		if !ok {
			txnType = "InnerTransaction"
		}
		if _, dup := seen[txnType]; dup {
			continue
		}
		seen[txnType] = struct{}{}
		found = append(found, txnType)
	}
	return found
}

// eventName extracts the event name from an arc4.emit call: the callee name
// when the first argument is a constructor call, otherwise the argument's
// literal text.
func eventName(call *sitter.Node, source []byte) (string, bool) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return "", false
	}
	for _, arg := range parse.NamedChildren(args) {
		switch arg.Type() {
		case "keyword_argument", "comment":
			continue
		case "call":
			if fn := arg.ChildByFieldName("function"); fn != nil {
				return parse.DottedName(fn, source), true
			}
			return parse.NodeText(arg, source), true
		default:
			return parse.NodeText(arg, source), true
		}
	}
	return "", false
}
