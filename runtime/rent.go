package runtime

// Rent parameters. An account whose balance covers the exemption threshold
// is never charged; accounts below it are not accepted at creation time.
const (
	lamportsPerByteYear = 3480
	exemptionYears      = 2
	storageOverhead     = 128
)

// RentExemptMinimum is the smallest balance at which an account holding
// dataLen bytes is exempt from rent collection.
func RentExemptMinimum(dataLen int) uint64 {
	return uint64(storageOverhead+dataLen) * lamportsPerByteYear * exemptionYears
}
