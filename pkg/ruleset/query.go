package ruleset

// Query selects what BoundRuleset.Get computes. It is a sealed union:
// the only values are those built by ByKey, ByNode, and ByExpression,
// so Get can match exhaustively instead of sniffing argument shapes.
type Query interface {
	query()
}

type byKey struct {
	key string
}

type byNode struct {
	element Element
}

type byExpression struct {
	lhs LhsSource
}

func (byKey) query()        {}
func (byNode) query()       {}
func (byExpression) query() {}

// ByKey queries the terminal output registered under key.
func ByKey(key string) Query {
	return byKey{key: key}
}

// ByNode queries the full annotation record of one document node.
func ByNode(element Element) Query {
	return byNode{element: element}
}

// ByExpression queries an ad-hoc left-hand side, evaluated as a
// throwaway terminal rule.
func ByExpression(lhs LhsSource) Query {
	return byExpression{lhs: lhs}
}
