package crypto

// Config selects the codec used for scene snapshots and new files.
// File envelopes record their codec, so old files stay readable after a change.
// Scene rows do not, so changing the algorithm requires re-saving existing rooms.
type Config struct {
	// Algorithm is AES-GCM or ChaCha20-Poly1305.
	Algorithm string `mapstructure:"algorithm" default:"AES-GCM"`
}
