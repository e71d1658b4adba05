package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_GeneArray(t *testing.T) {
	data := []byte(`{
		"genes": [
			{"contig": "chr", "start": 10, "end": 500, "strand": "+", "name": "dnaA", "product": "replication initiator"},
			{"contig": "chr", "start": 600, "end": 900, "strand": "-"}
		],
		"genomeLength": 4600000,
		"filename": "ecoli_k12"
	}`)

	p, err := DecodePayload(data)
	require.NoError(t, err)

	assert.Equal(t, int64(4600000), p.GenomeLength)
	assert.Equal(t, "ecoli_k12", p.Filename)
	require.Len(t, p.Genes, 2)

	assert.Equal(t, "dnaA", p.Genes[0].Name)
	assert.Equal(t, StrandForward, p.Genes[0].Strand)
	assert.Equal(t, int64(10), p.Genes[0].Start)

	assert.Equal(t, StrandReverse, p.Genes[1].Strand)
	assert.Empty(t, p.Genes[1].Name)
}

func TestDecodePayload_GenesAsString(t *testing.T) {
	array := []byte(`{
		"genes": [{"contig": "c", "start": 0, "end": 100, "strand": "+"}],
		"genomeLength": 1000,
		"filename": "x"
	}`)
	str := []byte(`{
		"genes": "[{\"contig\": \"c\", \"start\": 0, \"end\": 100, \"strand\": \"+\"}]",
		"genomeLength": 1000,
		"filename": "x"
	}`)

	fromArray, err := DecodePayload(array)
	require.NoError(t, err)
	fromString, err := DecodePayload(str)
	require.NoError(t, err)

	assert.Equal(t, fromArray, fromString, "string and array encodings must decode identically")
}

func TestDecodePayload_EmptyGenes(t *testing.T) {
	p, err := DecodePayload([]byte(`{"genes": [], "genomeLength": 5000, "filename": "test"}`))
	require.NoError(t, err)
	assert.Empty(t, p.Genes)

	p, err = DecodePayload([]byte(`{"genomeLength": 5000, "filename": "test"}`))
	require.NoError(t, err)
	assert.Empty(t, p.Genes, "missing genes field treated as empty list")
}

func TestDecodePayload_Malformed(t *testing.T) {
	_, err := DecodePayload([]byte(`{not json`))
	assert.Error(t, err)

	_, err = DecodePayload([]byte(`{"genes": "{broken", "genomeLength": 10}`))
	assert.Error(t, err, "genes string must itself decode")

	_, err = DecodePayload([]byte(`{"genes": [], "genomeLength": 0}`))
	assert.Error(t, err, "zero genome length rejected")

	_, err = DecodePayload([]byte(`{"genes": [], "genomeLength": -5}`))
	assert.Error(t, err, "negative genome length rejected")

	_, err = DecodePayload([]byte(`{"genes": [{"start": 1, "end": 2, "strand": "?"}], "genomeLength": 10}`))
	assert.Error(t, err, "unknown strand rejected")
}

func TestGene_DisplayName(t *testing.T) {
	named := Gene{Name: "lacZ"}
	assert.Equal(t, "lacZ", named.DisplayName())

	anonymous := Gene{Contig: "chr", Start: 5, End: 10}
	assert.Equal(t, "Unknown", anonymous.DisplayName())
}

func TestStrand_Valid(t *testing.T) {
	assert.True(t, StrandForward.Valid())
	assert.True(t, StrandReverse.Valid())
	assert.False(t, Strand("").Valid())
	assert.False(t, Strand("x").Valid())
}
