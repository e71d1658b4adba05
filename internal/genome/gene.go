// Package genome defines the gene annotation model delivered to the renderer
// and the decoding of the inbound payload from the host application.
package genome

// Strand is the orientation class of a gene, "+" or "-".
type Strand string

const (
	StrandForward Strand = "+"
	StrandReverse Strand = "-"
)

// Valid returns true if the strand is one of the two known classes.
func (s Strand) Valid() bool {
	return s == StrandForward || s == StrandReverse
}

// Gene represents a single annotation on the loaded genome.
// Genes are immutable once received; the renderer never repairs
// out-of-range coordinates, it renders them as delivered.
type Gene struct {
	Contig  string // Contig or chromosome name
	Start   int64  // Start position (0-based)
	End     int64  // End position, expected >= Start
	Strand  Strand // "+" (forward) or "-" (reverse)
	Name    string // Gene name or locus tag, may be empty on the wire
	Product string // Product description, may be empty
}

// DisplayName returns the gene name, or the fixed fallback when the
// annotation carries none.
func (g *Gene) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return "Unknown"
}

// Span returns the length of the gene in bases.
func (g *Gene) Span() int64 {
	return g.End - g.Start
}

// Context describes the genome a gene list belongs to.
type Context struct {
	Length   int64  // Total sequence length, > 0
	Filename string // Display label for the map title, not validated
}
