package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates the prompt size when a provider reports no usage.
type TokenCounter interface {
	Count(model, text string) int
}

// TiktokenCounter counts with the BPE encoding of the model, cl100k_base when unknown.
// Encodings are loaded lazily and cached.
type TiktokenCounter struct {
	mu   sync.Mutex
	encs map[string]*tiktoken.Tiktoken
}

func NewTiktokenCounter() *TiktokenCounter {
	return &TiktokenCounter{encs: make(map[string]*tiktoken.Tiktoken)}
}

// Count returns 0 when no encoding can be loaded.
func (c *TiktokenCounter) Count(model, text string) int {
	enc := c.encoding(model)
	if enc == nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

func (c *TiktokenCounter) encoding(model string) *tiktoken.Tiktoken {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enc, ok := c.encs[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil
		}
	}
	c.encs[model] = enc
	return enc
}
