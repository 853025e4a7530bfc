package utils

import "github.com/ethereum/go-ethereum/common"

// IsValidAddress reports whether s is a well-formed 20-byte hex address.
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}
