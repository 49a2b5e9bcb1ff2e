package entities

// SigningConfig represents a named bundle of signing credentials.
// Passwords are never modelled; the external build tool reads them itself.
type SigningConfig struct {
	Name      string `json:"name"`
	StoreFile string `json:"store_file,omitempty"`
	KeyAlias  string `json:"key_alias,omitempty"`
	StoreType string `json:"store_type,omitempty"`
}

// DebugSigningConfig returns the implicit debug signing config every Android project has
func DebugSigningConfig() SigningConfig {
	return SigningConfig{
		Name:      SigningConfigDebug,
		StoreFile: "$HOME/.android/debug.keystore",
		KeyAlias:  "androiddebugkey",
		StoreType: "jks",
	}
}
