package entities

// Android ABIs accepted by splits.abi
const (
	ABIArmeabiV7a = "armeabi-v7a"
	ABIArm64V8a   = "arm64-v8a"
	ABIX86        = "x86"
	ABIX8664      = "x86_64"
)

// SupportedABIs lists the known ABIs in canonical output order.
// armeabi, mips and mips64 were removed from the NDK and are rejected.
var SupportedABIs = []string{ABIArmeabiV7a, ABIArm64V8a, ABIX86, ABIX8664}

// IsSupportedABI reports whether abi is a known ABI identifier
func IsSupportedABI(abi string) bool {
	for _, s := range SupportedABIs {
		if s == abi {
			return true
		}
	}
	return false
}
