package export

import (
	"io"

	"github.com/goccy/go-json"
)

// JSONLEncoder writes one JSON document per line.
type JSONLEncoder struct {
	enc *json.Encoder
}

func NewJSONLEncoder(w io.Writer) *JSONLEncoder {
	return &JSONLEncoder{enc: json.NewEncoder(w)}
}

func (e *JSONLEncoder) Encode(rec Record) error {
	return e.enc.Encode(rec)
}
