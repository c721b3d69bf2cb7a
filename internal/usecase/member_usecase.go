package usecase

import (
	"fmt"

	"github.com/iho/daodash/internal/domain"
)

// MemberUseCase renders member addresses for the members table.
type MemberUseCase struct{}

// NewMemberUseCase creates a new MemberUseCase.
func NewMemberUseCase() *MemberUseCase {
	return &MemberUseCase{}
}

// Member is an address in every form the dashboard shows it.
type Member struct {
	Address  string
	Checksum string
	Short    string
}

// FormatMembers checksums and shortens each address, preserving order.
// The whole batch fails on the first invalid address.
func (uc *MemberUseCase) FormatMembers(addresses []string) ([]Member, error) {
	if len(addresses) > domain.MaxAddressesPerBatch {
		return nil, fmt.Errorf("%w: at most %d addresses per request", domain.ErrInvalidAddress, domain.MaxAddressesPerBatch)
	}

	members := make([]Member, 0, len(addresses))
	for i, address := range addresses {
		checksum, err := domain.ChecksumAddress(address)
		if err != nil {
			return nil, fmt.Errorf("address %d: %w", i, err)
		}
		short, _ := domain.ShortenAddress(checksum)

		members = append(members, Member{
			Address:  address,
			Checksum: checksum,
			Short:    short,
		})
	}

	return members, nil
}
