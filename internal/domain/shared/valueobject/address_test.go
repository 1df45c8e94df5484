package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddressInfo(t *testing.T) {
	addr, err := NewAddressInfo("  Rahim Uddin ", "01712345678", "House 12, Road 5", "Dhaka", "1207")
	require.NoError(t, err)
	assert.Equal(t, "Rahim Uddin", addr.Name)
	assert.False(t, addr.IsZero())
}

func TestNewAddressInfo_PhoneFormats(t *testing.T) {
	tests := []struct {
		phone string
		valid bool
	}{
		{"01712345678", true},
		{"8801712345678", true},
		{"+8801712345678", true},
		{"01912345678", true},
		{"01112345678", false}, // 011 not a valid operator prefix
		{"0171234567", false},  // too short
		{"017123456789", false},
		{"12345678901", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			_, err := NewAddressInfo("Name", tt.phone, "Addr", "City", "1207")
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewAddressInfo_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  [5]string
		wantErr string
	}{
		{"no name", [5]string{"", "01712345678", "Addr", "City", "1207"}, "name"},
		{"no phone", [5]string{"Name", "", "Addr", "City", "1207"}, "phone"},
		{"no address", [5]string{"Name", "01712345678", "", "City", "1207"}, "address"},
		{"no city", [5]string{"Name", "01712345678", "Addr", "", "1207"}, "city"},
		{"no pincode", [5]string{"Name", "01712345678", "Addr", "City", ""}, "pincode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddressInfo(tt.fields[0], tt.fields[1], tt.fields[2], tt.fields[3], tt.fields[4])
			require.Error(t, err)
			var addrErr *AddressError
			require.ErrorAs(t, err, &addrErr)
			assert.Contains(t, addrErr.Reason, tt.wantErr)
		})
	}
}

func TestAddressInfo_IsZero(t *testing.T) {
	assert.True(t, AddressInfo{}.IsZero())
	assert.False(t, AddressInfo{Name: "x"}.IsZero())
}
