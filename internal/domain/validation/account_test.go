package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAccount(t *testing.T) {
	tests := []struct {
		name    string
		payload AccountPayload
		want    []string
	}{
		{
			name: "valid payload",
			payload: AccountPayload{
				Email:     "jane.doe@example.com",
				LastName:  "Doe",
				FirstName: "Jane",
			},
			want: nil,
		},
		{
			name:    "everything missing",
			payload: AccountPayload{},
			want:    []string{MsgEmailRequired, MsgLastNameRequired, MsgFirstNameRequired},
		},
		{
			name: "whitespace counts as missing",
			payload: AccountPayload{
				Email:     "   ",
				LastName:  "\t",
				FirstName: "Jane",
			},
			want: []string{MsgEmailRequired, MsgLastNameRequired},
		},
		{
			name: "malformed email",
			payload: AccountPayload{
				Email:     "not-an-address",
				LastName:  "Doe",
				FirstName: "Jane",
			},
			want: []string{MsgEmailMalformed},
		},
		{
			name: "blank email reported as missing not malformed",
			payload: AccountPayload{
				Email:     "",
				LastName:  "Doe",
				FirstName: "Jane",
			},
			want: []string{MsgEmailRequired},
		},
		{
			name: "violations keep field order",
			payload: AccountPayload{
				Email:     "jane.doe@",
				LastName:  "",
				FirstName: "",
			},
			want: []string{MsgEmailMalformed, MsgLastNameRequired, MsgFirstNameRequired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateAccount(tt.payload))
		})
	}
}
