package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const shortAddressChars = 4

// ValidateAddress checks that address is a 20-byte hex account address.
func ValidateAddress(address string) error {
	if !common.IsHexAddress(strings.TrimSpace(address)) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}

// ChecksumAddress returns the EIP-55 form of address.
func ChecksumAddress(address string) (string, error) {
	if err := ValidateAddress(address); err != nil {
		return "", err
	}
	return common.HexToAddress(strings.TrimSpace(address)).Hex(), nil
}

// ShortenAddress renders an address as "0x1234…abcd" for member lists.
func ShortenAddress(address string) (string, error) {
	checksummed, err := ChecksumAddress(address)
	if err != nil {
		return "", err
	}

	return checksummed[:2+shortAddressChars] + "…" + checksummed[len(checksummed)-shortAddressChars:], nil
}
