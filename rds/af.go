package rds

// Alternative-frequency list codes, per the RDS standard: a byte in
// [afListOpenLow, afListOpenHigh] opens a list whose length is
// byte-afListOpenLow; subsequent bytes in [afFreqLow, afFreqHigh] are
// individual frequency codes.
const (
	afListOpenLow  = 224
	afListOpenHigh = 249
	afFreqLow      = 1
	afFreqHigh     = 204
)

// DecodeAltFreq converts an AF code byte b in [1,204] to its broadcast
// frequency in MHz, per the RDS standard's 100kHz-step encoding starting
// at 87.6 MHz.
func DecodeAltFreq(b int) float64 {
	return float64(100*(b-1)+87600) / 1000
}

// EncodeAltFreq is the inverse of DecodeAltFreq: given a frequency in MHz
// that was produced by DecodeAltFreq, recovers the original AF code byte.
func EncodeAltFreq(mhz float64) int {
	return int(mhz*1000+0.5-87600)/100 + 1
}

// isAFListOpen reports whether b opens an AF list, and if so its declared
// length.
func isAFListOpen(b int) (length int, ok bool) {
	if b < afListOpenLow || b > afListOpenHigh {
		return 0, false
	}
	return b - afListOpenLow, true
}

// isAFFreqCode reports whether b is a valid AF frequency code byte.
func isAFFreqCode(b int) bool {
	return b >= afFreqLow && b <= afFreqHigh
}
