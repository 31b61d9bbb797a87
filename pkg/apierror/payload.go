// Package apierror классифицирует тела ошибок валидации, которые возвращает бэкенд студии,
// и превращает их в одно сообщение для пользователя.
package apierror

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Зарезервированные ключи тела ошибки
const (
	KeyDetail         = "detail"
	KeyNonFieldErrors = "non_field_errors"
)

// Payload is a validation-error body reduced to one of the known shapes.
type Payload interface {
	isPayload()
}

// StringDetail is {"detail": "..."}.
type StringDetail struct {
	Text string
}

// ArrayDetail is {"detail": ["...", ...]}.
type ArrayDetail struct {
	Items []string
}

// NonFieldErrors is {"non_field_errors": "..."} or {"non_field_errors": ["...", ...]}.
type NonFieldErrors struct {
	Items []string
}

// FieldError holds the messages reported for one field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors is {"<field>": ["...", ...], ...} in the order the backend serialized the keys.
type FieldErrors struct {
	Fields []FieldError
}

// Unrecognized is any body that matches none of the shapes above.
type Unrecognized struct{}

func (StringDetail) isPayload()   {}
func (ArrayDetail) isPayload()    {}
func (NonFieldErrors) isPayload() {}
func (FieldErrors) isPayload()    {}
func (Unrecognized) isPayload()   {}

type member struct {
	key   string
	value json.RawMessage
}

// Parse классифицирует тело ответа. Никогда не возвращает nil.
// Порядок ключей сохраняется, поэтому FieldErrors отражает порядок сериализации бэкенда.
func Parse(body []byte) Payload {
	members, ok := decodeObject(body)
	if !ok {
		return Unrecognized{}
	}

	if raw, found := lookup(members, KeyDetail); found {
		if s, ok := asString(raw); ok && s != "" {
			return StringDetail{Text: s}
		}
		if items, ok := asArray(raw); ok && len(items) > 0 {
			return ArrayDetail{Items: items}
		}
	}

	if raw, found := lookup(members, KeyNonFieldErrors); found {
		// строка возвращается как есть, пустую Extract заменит на FallbackMessage
		if s, ok := asString(raw); ok {
			return NonFieldErrors{Items: []string{s}}
		}
		if items, ok := asArray(raw); ok && len(items) > 0 {
			return NonFieldErrors{Items: items}
		}
	}

	var fields []FieldError
	for _, m := range members {
		if m.key == KeyDetail || m.key == KeyNonFieldErrors {
			continue
		}
		messages, ok := asStringArray(m.value)
		if !ok || len(messages) == 0 {
			continue
		}
		fields = append(fields, FieldError{Field: m.key, Messages: messages})
	}
	if len(fields) > 0 {
		return FieldErrors{Fields: fields}
	}

	return Unrecognized{}
}

// decodeObject читает JSON-объект верхнего уровня с сохранением порядка ключей
func decodeObject(body []byte) ([]member, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, false
	}

	var members []member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		members = append(members, member{key: key, value: raw})
	}

	return members, true
}

// lookup возвращает первое вхождение ключа
func lookup(members []member, key string) (json.RawMessage, bool) {
	for _, m := range members {
		if m.key == key {
			return m.value, true
		}
	}
	return nil, false
}

func asString(raw json.RawMessage) (string, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// asArray приводит элементы массива к строкам; нестроковые элементы остаются в компактном JSON
func asArray(raw json.RawMessage) ([]string, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(elems))
	for _, e := range elems {
		if s, ok := asString(e); ok {
			items = append(items, s)
			continue
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, e); err != nil {
			items = append(items, strings.TrimSpace(string(e)))
			continue
		}
		items = append(items, buf.String())
	}
	return items, true
}

func asStringArray(raw json.RawMessage) ([]string, bool) {
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}
