package formatter

import (
	"encoding/json"
	"log"

	"github.com/TradeStacksInc/sleek-purchase-order-genius-sub001/siri"
)

// ResponseBuilder renders SIRI responses. Pretty switches JSON output to
// two-space indentation for the debugging endpoints.
type ResponseBuilder struct {
	Pretty bool
}

// NewResponseBuilder creates a builder producing compact output.
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// BuildJSON serializes a SIRI response to JSON. The response types contain
// nothing json can fail on, so an error is only logged.
func (rb *ResponseBuilder) BuildJSON(res *siri.SiriResponse) []byte {
	var (
		b   []byte
		err error
	)
	if rb.Pretty {
		b, err = json.MarshalIndent(res, "", "  ")
	} else {
		b, err = json.Marshal(res)
	}
	if err != nil {
		log.Printf("[formatter] marshal SIRI response: %v", err)
	}
	return b
}
