/*
Package lineage implements GENtle's lineage DAG: nodes hold seq_ids by
value (no back-pointers), edges record provenance, and the graph answers
ancestors/descendants/siblings queries as plain edge-list walks.

Grounded on the node/edge/graph naming convention found in the retrieval
pack's data-pipeline lineage API, adapted per spec.md §9's "arena keyed by
seq_id" redesign note: nodes and edges are stored in flat slices with a
secondary seq_id -> node_id index, instead of a pointer graph, so cloning
or serializing a ProjectState never has to worry about pointer identity.
*/
package lineage

// Origin classifies how a sequence entered the project (spec.md §3).
type Origin int

const (
	ImportedGenomic Origin = iota
	ImportedCdna
	ImportedSynthetic
	ImportedUnknown
	Derived
	InSilicoSelection
	Branch
)

var originNames = map[Origin]string{
	ImportedGenomic:    "ImportedGenomic",
	ImportedCdna:       "ImportedCdna",
	ImportedSynthetic:  "ImportedSynthetic",
	ImportedUnknown:    "ImportedUnknown",
	Derived:            "Derived",
	InSilicoSelection:  "InSilicoSelection",
	Branch:             "Branch",
}

func (o Origin) String() string { return originNames[o] }

func (o Origin) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

func (o *Origin) UnmarshalJSON(data []byte) error {
	s := data2string(data)
	for k, v := range originNames {
		if v == s {
			*o = k
			return nil
		}
	}
	*o = ImportedUnknown
	return nil
}

func data2string(data []byte) string {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		return string(data[1 : len(data)-1])
	}
	return string(data)
}

// Node is a single lineage DAG vertex: a point-in-time record that seq_id
// existed, tagged with how it came to exist.
type Node struct {
	NodeID      string `json:"nodeId"`
	SeqID       string `json:"seqId"`
	Origin      Origin `json:"origin"`
	CreatedByOp string `json:"createdByOp,omitempty"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

// Edge connects a parent node to a child node, tagged with the operation
// and run that produced the child.
type Edge struct {
	FromNode string `json:"fromNode"`
	ToNode   string `json:"toNode"`
	OpID     string `json:"opId"`
	RunID    string `json:"runId"`
}

// Graph owns every node and edge ever created. Nodes are never deleted and
// edges are never retracted (spec.md §3); cycles are prevented by
// construction since AddEdge only ever points from a pre-existing node to a
// brand new one (the engine never rewires an edge's endpoints).
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`

	bySeqID map[string]string `json:"-"`
}

// New returns an empty lineage graph.
func New() *Graph {
	return &Graph{bySeqID: make(map[string]string)}
}

// ensureIndex rebuilds the secondary index, used after JSON
// deserialization where the unexported map field arrives empty.
func (g *Graph) ensureIndex() {
	if g.bySeqID != nil {
		return
	}
	g.bySeqID = make(map[string]string, len(g.Nodes))
	for _, n := range g.Nodes {
		g.bySeqID[n.SeqID] = n.NodeID
	}
}

// AddNode registers a new node and indexes it by seq_id.
func (g *Graph) AddNode(n Node) {
	g.ensureIndex()
	g.Nodes = append(g.Nodes, n)
	g.bySeqID[n.SeqID] = n.NodeID
}

// AddEdge records provenance from an existing node to a new one.
func (g *Graph) AddEdge(e Edge) {
	g.Edges = append(g.Edges, e)
}

// NodeForSeqID returns the node id registered for seqID, if any.
func (g *Graph) NodeForSeqID(seqID string) (string, bool) {
	g.ensureIndex()
	id, ok := g.bySeqID[seqID]
	return id, ok
}

// Ancestors returns every node that has a directed edge path into seqID's
// node, nearest first, without duplicates.
func (g *Graph) Ancestors(seqID string) []Node {
	nodeID, ok := g.NodeForSeqID(seqID)
	if !ok {
		return nil
	}
	byID := g.nodesByID()
	parentsOf := g.parentEdgesByChild()

	seen := map[string]bool{nodeID: true}
	var out []Node
	queue := []string{nodeID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range parentsOf[cur] {
			if seen[e.FromNode] {
				continue
			}
			seen[e.FromNode] = true
			if n, ok := byID[e.FromNode]; ok {
				out = append(out, n)
			}
			queue = append(queue, e.FromNode)
		}
	}
	return out
}

// Descendants returns every node reachable by following edges forward from
// seqID's node.
func (g *Graph) Descendants(seqID string) []Node {
	nodeID, ok := g.NodeForSeqID(seqID)
	if !ok {
		return nil
	}
	byID := g.nodesByID()
	childrenOf := g.childEdgesByParent()

	seen := map[string]bool{nodeID: true}
	var out []Node
	queue := []string{nodeID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range childrenOf[cur] {
			if seen[e.ToNode] {
				continue
			}
			seen[e.ToNode] = true
			if n, ok := byID[e.ToNode]; ok {
				out = append(out, n)
			}
			queue = append(queue, e.ToNode)
		}
	}
	return out
}

// Siblings returns the other sequences produced by the same op_id that
// produced seqID, excluding seqID itself.
func (g *Graph) Siblings(seqID string) []Node {
	nodeID, ok := g.NodeForSeqID(seqID)
	if !ok {
		return nil
	}
	byID := g.nodesByID()
	var ownOp string
	for _, n := range g.Nodes {
		if n.NodeID == nodeID {
			ownOp = n.CreatedByOp
			break
		}
	}
	if ownOp == "" {
		return nil
	}
	var out []Node
	for _, n := range g.Nodes {
		if n.NodeID != nodeID && n.CreatedByOp == ownOp {
			out = append(out, byID[n.NodeID])
		}
	}
	return out
}

func (g *Graph) nodesByID() map[string]Node {
	m := make(map[string]Node, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.NodeID] = n
	}
	return m
}

func (g *Graph) parentEdgesByChild() map[string][]Edge {
	m := make(map[string][]Edge)
	for _, e := range g.Edges {
		m[e.ToNode] = append(m[e.ToNode], e)
	}
	return m
}

func (g *Graph) childEdgesByParent() map[string][]Edge {
	m := make(map[string][]Edge)
	for _, e := range g.Edges {
		m[e.FromNode] = append(m[e.FromNode], e)
	}
	return m
}
