package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayFormatterShortForm(t *testing.T) {
	f := NewDisplayFormatter(map[string]string{
		"4580063253194": "X000VPDQIR",
		"000000000A003": "なし",
		"000000000A022": "o6uv",
		"4900000000049": "",
	})

	tests := []struct {
		jan  string
		want string
	}{
		{"4580063253194", "DQIR"},
		{"000000000A003", "なし"},
		{"000000000A022", "o6uv"},
		{"4900000000018", "0018"},
		{"4900000000049", "0049"},
		{"12", "12"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.jan, func(t *testing.T) {
			assert.Equal(t, tt.want, f.ShortForm(tt.jan))
		})
	}
}

func TestDisplayFormatterCopiesOverrides(t *testing.T) {
	overrides := map[string]string{"J1": "ABCDEFG"}
	f := NewDisplayFormatter(overrides)
	overrides["J1"] = "ZZZZZZ"

	assert.Equal(t, "DEFG", f.ShortForm("J1"))
}

func TestDisplayFormatterMultibyte(t *testing.T) {
	f := NewDisplayFormatter(map[string]string{"J1": "在庫なし商品"})
	assert.Equal(t, "なし商品", f.ShortForm("J1"))
}
