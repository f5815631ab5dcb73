package onthisday

import (
	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures report size against a token budget.
type TokenCounter interface {
	CountTokens(text string) int
}

// TiktokenCounter counts tokens with the cl100k_base encoding.
type TiktokenCounter struct {
	encoder *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the cl100k_base encoding. The first call may need
// network access to download the BPE ranks unless TIKTOKEN_CACHE_DIR is populated.
func NewTiktokenCounter() (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, err
	}
	return &TiktokenCounter{encoder: enc}, nil
}

// CountTokens implements TokenCounter.
func (tc *TiktokenCounter) CountTokens(text string) int {
	return len(tc.encoder.Encode(text, nil, nil))
}
