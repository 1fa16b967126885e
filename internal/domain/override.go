package domain

import "encoding/json"

// BoolOverride is a tri-state flag: inherit the shop default, or override it
// with an explicit value. The zero value inherits.
type BoolOverride struct {
	set   bool
	value bool
}

func InheritBool() BoolOverride        { return BoolOverride{} }
func OverrideBool(v bool) BoolOverride { return BoolOverride{set: true, value: v} }

// Get returns the override value and whether one is set.
func (o BoolOverride) Get() (bool, bool) { return o.value, o.set }

// Or returns the override value when set, else the fallback.
func (o BoolOverride) Or(fallback bool) bool {
	if o.set {
		return o.value
	}
	return fallback
}

func (o BoolOverride) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *BoolOverride) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = BoolOverride{}
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = OverrideBool(v)
	return nil
}

// ModeOverride is the tri-state counterpart for presentation mode.
type ModeOverride struct {
	set   bool
	value Presentation
}

func InheritMode() ModeOverride                { return ModeOverride{} }
func OverrideMode(v Presentation) ModeOverride { return ModeOverride{set: true, value: v} }

func (o ModeOverride) Get() (Presentation, bool) { return o.value, o.set }

func (o ModeOverride) Or(fallback Presentation) Presentation {
	if o.set {
		return o.value
	}
	return fallback
}

func (o ModeOverride) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *ModeOverride) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = ModeOverride{}
		return nil
	}
	var v Presentation
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = OverrideMode(v)
	return nil
}
