package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "plain text passes through",
			input: "Samsung Galaxy A15",
			want:  "Samsung Galaxy A15",
		},
		{
			name:  "tags removed",
			input: "<p>Pantalla <b>AMOLED</b> de 6.5\"</p>",
			want:  "Pantalla AMOLED de 6.5\"",
		},
		{
			name:  "block boundaries keep words apart",
			input: "<p>Primera linea</p><p>Segunda linea</p>",
			want:  "Primera linea Segunda linea",
		},
		{
			name:  "whitespace collapsed and trimmed",
			input: "  <div>  mucho \n\t espacio  </div>  ",
			want:  "mucho espacio",
		},
		{
			name:  "entities decoded",
			input: "Caf&eacute; &amp; t&eacute;",
			want:  "Café & té",
		},
		{
			name:  "markup only yields empty",
			input: "<br><div></div>",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}
