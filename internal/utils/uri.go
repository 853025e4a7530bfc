package utils

import (
	"fmt"
	"net/url"
)

// ValidateBaseURI checks that base parses as a URI with the ipfs scheme.
func ValidateBaseURI(base string) error {
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("invalid base uri: %w", err)
	}
	if parsed.Scheme != "ipfs" {
		return fmt.Errorf("base uri must use the ipfs scheme, got %q", parsed.Scheme)
	}
	return nil
}

// TokenURI joins a collection base URI and a token id. The join rule is a
// single "/" separator regardless of how the base ends; it must stay
// consistent for the lifetime of a collection.
func TokenURI(base string, tokenID uint64) string {
	return fmt.Sprintf("%s/%d", base, tokenID)
}
