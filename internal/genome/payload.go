package genome

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Payload is the inbound message handed to the renderer on a genome load.
type Payload struct {
	Genes        []Gene
	GenomeLength int64
	Filename     string
}

// payloadJSON mirrors the wire format. The genes field may arrive either as
// an array or as a JSON-encoded string containing the same array, so it is
// captured raw and decoded in a second step.
type payloadJSON struct {
	Genes        json.RawMessage `json:"genes"`
	GenomeLength int64           `json:"genomeLength"`
	Filename     string          `json:"filename"`
}

type geneJSON struct {
	Contig  string `json:"contig"`
	Start   int64  `json:"start"`
	End     int64  `json:"end"`
	Strand  string `json:"strand"`
	Name    string `json:"name,omitempty"`
	Product string `json:"product,omitempty"`
}

// DecodePayload parses an inbound genome payload. A decode failure means the
// whole render pass is aborted; there is no partial result.
func DecodePayload(data []byte) (*Payload, error) {
	var raw payloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	if raw.GenomeLength <= 0 {
		return nil, fmt.Errorf("decode payload: genomeLength must be positive, got %d", raw.GenomeLength)
	}

	genes, err := decodeGenes(raw.Genes)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	return &Payload{
		Genes:        genes,
		GenomeLength: raw.GenomeLength,
		Filename:     raw.Filename,
	}, nil
}

// decodeGenes handles both wire encodings of the gene list: a plain array,
// or a string holding the JSON text of the array.
func decodeGenes(raw json.RawMessage) ([]Gene, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil, fmt.Errorf("unquote genes string: %w", err)
		}
		trimmed = []byte(encoded)
	}

	var rows []geneJSON
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode genes: %w", err)
	}

	genes := make([]Gene, 0, len(rows))
	for i, r := range rows {
		strand := Strand(r.Strand)
		if !strand.Valid() {
			return nil, fmt.Errorf("gene %d: invalid strand %q", i, r.Strand)
		}
		genes = append(genes, Gene{
			Contig:  r.Contig,
			Start:   r.Start,
			End:     r.End,
			Strand:  strand,
			Name:    r.Name,
			Product: r.Product,
		})
	}

	return genes, nil
}
