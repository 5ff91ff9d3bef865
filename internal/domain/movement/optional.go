package movement

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type optionalState uint8

const (
	stateUnset optionalState = iota
	stateClear
	stateValue
)

// OptionalID referencia opcional de tres estados:
//   - Unset: el campo se omite del payload ("no tocar en el servidor").
//   - Clear: el campo se envía como null ("borrar en el servidor").
//   - Value: el campo se envía con el id.
//
// El valor cero es Unset. Con el tag `json:",omitzero"` encoding/json omite los Unset.
type OptionalID struct {
	state optionalState
	id    int64
}

// Unset campo omitido.
func Unset() OptionalID { return OptionalID{} }

// Clear campo enviado como null.
func Clear() OptionalID { return OptionalID{state: stateClear} }

// Value campo con id.
func Value(id int64) OptionalID { return OptionalID{state: stateValue, id: id} }

// FromPtr Value si p no es nil; si no, fallback.
func FromPtr(p *int64, fallback OptionalID) OptionalID {
	if p == nil {
		return fallback
	}
	return Value(*p)
}

// IsZero reporta Unset; lo usa encoding/json con omitzero.
func (o OptionalID) IsZero() bool { return o.state == stateUnset }

// IsClear reporta si el campo se enviará como null.
func (o OptionalID) IsClear() bool { return o.state == stateClear }

// Value devuelve el id y true solo en estado Value.
func (o OptionalID) Value() (int64, bool) {
	return o.id, o.state == stateValue
}

// Ptr nil para Unset y Clear; puntero al id para Value.
func (o OptionalID) Ptr() *int64 {
	if o.state != stateValue {
		return nil
	}
	id := o.id
	return &id
}

func (o OptionalID) String() string {
	switch o.state {
	case stateClear:
		return "null"
	case stateValue:
		return strconv.FormatInt(o.id, 10)
	default:
		return "unset"
	}
}

// MarshalJSON Clear → null, Value → número. Un Unset sin omitzero también sale como null.
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.state != stateValue {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(o.id, 10)), nil
}

// UnmarshalJSON null → Clear, número → Value. Una clave ausente deja el valor cero (Unset).
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Clear()
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*o = Value(id)
	return nil
}
