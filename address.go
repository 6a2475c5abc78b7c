package roles

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidAddress is returned by ParseAddress.
var ErrInvalidAddress = errors.New("invalid address")

var validate = validator.New()

// ParseAddress accepts 0x-prefixed hex addresses. Mixed-case input must carry a valid EIP-55 checksum;
// all-lowercase and all-uppercase input is taken as is.
func ParseAddress(raw string) (common.Address, error) {
	if err := validate.Var(raw, "required,eth_addr"); err != nil {
		return common.Address{}, ErrInvalidAddress
	}

	addr := common.HexToAddress(raw)
	body := raw[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) && raw != addr.Hex() {
		return common.Address{}, ErrInvalidAddress
	}

	return addr, nil
}
