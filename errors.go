package avro

import "errors"

// Sentinel errors identifying the failure kinds a resolution can produce.
// Resolution failures other than Reader errors wrap one of these with
// errors.Is-compatible %w wrapping, so callers can classify a failure
// without parsing its message. Errors that originate in the Reader (I/O
// failures and malformed input, surfaced through Reader.Error), and errors
// from the schema constructors, ParseDefaultLiteral and Decode, wrap none
// of them.
var (
	// ErrIncompatibleSchema is returned when a writer/reader schema pairing
	// is not covered by the promotion table, at the root or at any
	// recursive node.
	ErrIncompatibleSchema = errors.New("avro: incompatible schema")

	// ErrInvalidDiscriminant is returned when a union discriminant read off
	// the wire is out of range for the writer union's branch count.
	ErrInvalidDiscriminant = errors.New("avro: invalid union discriminant")

	// ErrNoCompatibleBranch is returned when no reader-union branch is
	// compatible with the selected (or, for a non-union writer, the sole)
	// writer schema.
	ErrNoCompatibleBranch = errors.New("avro: no compatible union branch")

	// ErrMissingDefaultForReaderField is returned when a reader-only record
	// field has no default value to fall back on.
	ErrMissingDefaultForReaderField = errors.New("avro: missing default for reader-only field")

	// ErrInvalidDefault is returned when a schema default literal cannot be
	// interpreted as the destination value's type.
	ErrInvalidDefault = errors.New("avro: invalid default literal")

	// ErrUnknownType is returned when the dispatcher encounters a schema
	// Type it does not recognize. Defensive; should be unreachable for
	// schemas built through this package's constructors.
	ErrUnknownType = errors.New("avro: unknown schema type")
)
