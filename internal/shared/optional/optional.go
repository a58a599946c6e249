package optional

// Float64 membungkus nilai numerik opsional. Nilai yang tidak di-set
// dibaca sebagai nol, eksplisit dan bukan lewat coercion.
type Float64 struct {
	value float64
	set   bool
}

func Some(v float64) Float64 {
	return Float64{value: v, set: true}
}

func FromPtr(v *float64) Float64 {
	if v == nil {
		return Float64{}
	}
	return Some(*v)
}

// OrZero mengembalikan nilai, atau 0 jika tidak di-set.
func (f Float64) OrZero() float64 {
	if !f.set {
		return 0
	}
	return f.value
}

func (f Float64) IsSet() bool {
	return f.set
}
