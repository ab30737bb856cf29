package rdf

// Graph is a set of triples. Adding a triple that is already present is a
// no-op. Iteration follows first insertion order.
type Graph struct {
	triples []Triple
	index   map[Triple]struct{}
}

func NewGraph() *Graph {
	return &Graph{index: make(map[Triple]struct{})}
}

// Add inserts t and reports whether it was not present before.
func (g *Graph) Add(t Triple) bool {
	if _, ok := g.index[t]; ok {
		return false
	}
	g.index[t] = struct{}{}
	g.triples = append(g.triples, t)
	return true
}

func (g *Graph) Len() int { return len(g.triples) }

// Triples returns a copy of the graph triples.
func (g *Graph) Triples() []Triple {
	return append([]Triple(nil), g.triples...)
}

// Dataset is a collection of named graphs. The default graph is stored
// under DefaultGraph.
type Dataset struct {
	graphs map[string]*Graph
	names  []string
}

func NewDataset() *Dataset {
	return &Dataset{graphs: make(map[string]*Graph)}
}

// AddTriple adds t to the graph called name, creating the graph if needed.
// An empty name is the default graph.
func (d *Dataset) AddTriple(name string, t Triple) bool {
	if name == "" {
		name = DefaultGraph
	}
	g, ok := d.graphs[name]
	if !ok {
		g = NewGraph()
		d.graphs[name] = g
		d.names = append(d.names, name)
	}
	return g.Add(t)
}

func (d *Dataset) AddQuad(q Quad) bool {
	return d.AddTriple(q.GraphName(), q.Triple())
}

// Graph returns the graph called name or nil.
func (d *Dataset) Graph(name string) *Graph {
	return d.graphs[name]
}

// GraphNames returns graph names in the order the graphs were created.
func (d *Dataset) GraphNames() []string {
	return append([]string(nil), d.names...)
}

// Len returns the total number of triples over all graphs.
func (d *Dataset) Len() int {
	var n int
	for _, g := range d.graphs {
		n += g.Len()
	}
	return n
}

// Quads returns every triple of every graph as a quad. Quads of the same
// graph are contiguous.
func (d *Dataset) Quads() []Quad {
	quads := make([]Quad, 0, d.Len())
	for _, name := range d.names {
		graph := graphNode(name)
		for _, t := range d.graphs[name].triples {
			quads = append(quads, Quad{
				Subject:   t.Subject,
				Predicate: t.Predicate,
				Object:    t.Object,
				Graph:     graph,
			})
		}
	}
	return quads
}

// Validate returns the first structural violation found in the dataset.
func (d *Dataset) Validate() error {
	for _, q := range d.Quads() {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}
