package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `json:"name" validate:"notblank,max=10"`
	Email string  `json:"email" validate:"required,email"`
	Age   int     `json:"age" validate:"gte=0,lte=150"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=5"`
}

func TestStruct(t *testing.T) {
	t.Parallel()
	long := "toolong"
	short := "ok"
	tests := []struct {
		name    string
		in      sample
		wantMsg string
	}{
		{"Valid", sample{Name: "Carlos", Email: "carlos@x.com", Age: 30}, ""},
		{"Valid Optional", sample{Name: "Carlos", Email: "carlos@x.com", Bio: &short}, ""},
		{"Blank Name", sample{Name: "   ", Email: "carlos@x.com"}, "name is required"},
		{"Name Too Long", sample{Name: strings.Repeat("n", 11), Email: "carlos@x.com"}, "name must be at most 10 characters"},
		{"Bad Email", sample{Name: "Carlos", Email: "nope"}, "email must be a valid email address"},
		{"Email Missing Domain", sample{Name: "Carlos", Email: "user@"}, "email must be a valid email address"},
		{"Empty Email", sample{Name: "Carlos"}, "email is required"},
		{"Negative Age", sample{Name: "Carlos", Email: "carlos@x.com", Age: -1}, "age must be 0 or greater"},
		{"Age Too High", sample{Name: "Carlos", Email: "carlos@x.com", Age: 151}, "age must be 150 or less"},
		{"Optional Too Long", sample{Name: "Carlos", Email: "carlos@x.com", Bio: &long}, "bio must be at most 5 characters"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Struct(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}
