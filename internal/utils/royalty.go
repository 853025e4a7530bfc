package utils

// SplitRoyalty divides a payment into a royalty share and an owner
// remainder: royalty = floor(amount*percent/100). The quotient/remainder
// decomposition keeps the intermediate products inside uint64 for any
// amount, so no big-integer math is needed. Rounding always favors the
// remainder, and royalty+remainder == amount exactly.
//
// percent must be in [0,100]; callers validate it at config time.
func SplitRoyalty(amount, percent uint64) (royalty, remainder uint64) {
	q := amount / 100
	r := amount % 100
	royalty = q*percent + r*percent/100
	return royalty, amount - royalty
}
