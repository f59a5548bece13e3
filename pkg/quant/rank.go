package quant

// bitsPerWeight orders labels by precision. Values approximate llama.cpp's
// effective bits per weight; only the ordering matters for tie-breaking.
var bitsPerWeight = map[string]float64{
	"F32":     32,
	"BF16":    16,
	"F16":     16,
	"Q8_0":    8.50,
	"Q6_K":    6.56,
	"Q5_1":    6.00,
	"Q5_K_M":  5.69,
	"Q5_K_S":  5.54,
	"Q5_0":    5.50,
	"Q4_1":    5.00,
	"Q4_K_XL": 4.95,
	"Q4_K_M":  4.85,
	"Q4_K_S":  4.58,
	"Q4_0":    4.55,
	"IQ4_NL":  4.50,
	"IQ4_XS":  4.25,
	"Q3_K_L":  4.03,
	"Q3_K_M":  3.91,
	"IQ3_M":   3.66,
	"Q3_K_S":  3.50,
	"IQ3_S":   3.44,
	"IQ3_XS":  3.30,
	"IQ3_XXS": 3.06,
	"Q2_K":    2.96,
	"Q2_K_S":  2.78,
	"IQ2_M":   2.70,
	"IQ2_S":   2.50,
	"IQ2_XS":  2.31,
	"IQ2_XXS": 2.06,
	"IQ1_M":   1.75,
	"IQ1_S":   1.56,

	// Raw checkpoints are conventionally fp16/bf16.
	"NONE": 16,
}

// BitsPerWeight returns the effective precision of a quantization label, or
// 0 for labels it does not know. Higher means less lossy.
func BitsPerWeight(label string) float64 {
	return bitsPerWeight[normalizeLabel(label)]
}
