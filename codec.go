package fixed

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The serialized form of a fixed-point number is its raw value.
// The scale is not part of the payload, so both sides must be built with
// the same [Scale].

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// Also see method [Parse].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Fixed) UnmarshalText(text []byte) error {
	var err error
	*d, err = Parse(string(text))
	return err
}

// MarshalText implements [encoding.TextMarshaler] interface.
// Also see method [Fixed.String].
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Fixed) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalBinary implements [encoding.BinaryUnmarshaler] interface.
// The data must be 8 bytes holding the raw value in big-endian
// two's complement.
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (d *Fixed) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return fmt.Errorf("unmarshaling %x: %v byte(s) instead of 8: %w", data, len(data), ErrInvalidFixed)
	}
	f, err := FromRaw(int64(binary.BigEndian.Uint64(data)))
	if err != nil {
		return fmt.Errorf("unmarshaling %x: %w", data, err)
	}
	*d = f
	return nil
}

// MarshalBinary implements [encoding.BinaryMarshaler] interface.
// The result is the raw value as 8 bytes in big-endian two's complement.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (d Fixed) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(make([]byte, 0, 8)), nil
}

// AppendBinary appends the binary form of d to b and returns the extended buffer.
// Also see method [Fixed.MarshalBinary].
func (d Fixed) AppendBinary(b []byte) []byte {
	return binary.BigEndian.AppendUint64(b, uint64(d.raw))
}

// UnmarshalCBOR implements [cbor.Unmarshaler] interface.
// The data must be a CBOR integer holding the raw value.
//
// [cbor.Unmarshaler]: https://pkg.go.dev/github.com/fxamacker/cbor/v2#Unmarshaler
func (d *Fixed) UnmarshalCBOR(data []byte) error {
	var raw int64
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshaling %x: %w: %v", data, ErrInvalidFixed, err)
	}
	f, err := FromRaw(raw)
	if err != nil {
		return fmt.Errorf("unmarshaling %x: %w", data, err)
	}
	*d = f
	return nil
}

// MarshalCBOR implements [cbor.Marshaler] interface.
// The result is a CBOR integer holding the raw value.
//
// [cbor.Marshaler]: https://pkg.go.dev/github.com/fxamacker/cbor/v2#Marshaler
func (d Fixed) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(d.raw)
}

// Scan implements the [sql.Scanner] interface.
// Integers are interpreted as raw values, strings and byte slices are parsed
// with [Parse], and floats are converted with [NewFromFloat64].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Fixed) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case int64:
		*d, err = FromRaw(value)
	case float64:
		*d, err = NewFromFloat64(value)
	case []byte:
		*d, err = Parse(string(value))
	case string:
		*d, err = Parse(value)
	default:
		err = fmt.Errorf("failed to convert from %T to %T: %w", value, Fixed{}, ErrInvalidFixed)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
// The result is the raw value, so the column type should be a 64-bit integer.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Fixed) Value() (driver.Value, error) {
	return d.raw, nil
}

// NullFixed represents a fixed-point number that can be null.
// Its zero value is null.
// NullFixed is not thread-safe.
type NullFixed struct {
	Fixed Fixed
	Valid bool
}

// Scan implements the [sql.Scanner] interface.
// See also method [Fixed.Scan].
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (n *NullFixed) Scan(value any) error {
	if value == nil {
		n.Fixed = Fixed{}
		n.Valid = false
		return nil
	}
	err := n.Fixed.Scan(value)
	if err != nil {
		n.Fixed = Fixed{}
		n.Valid = false
		return err
	}
	n.Valid = true
	return nil
}

// Value implements the [driver.Valuer] interface.
// See also method [Fixed.Value].
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (n NullFixed) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Fixed.Value()
}
