package handler

import (
	"net/http"

	"github.com/iho/daodash/internal/adapter/http/dto"
	"github.com/iho/daodash/internal/usecase"
)

// MemberService defines the behavior needed by MemberHandler.
type MemberService interface {
	FormatMembers(addresses []string) ([]usecase.Member, error)
}

// MemberHandler handles member address requests.
type MemberHandler struct {
	memberUC MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberUC MemberService) *MemberHandler {
	return &MemberHandler{memberUC: memberUC}
}

// Format checksums and shortens member addresses.
func (h *MemberHandler) Format(w http.ResponseWriter, r *http.Request) {
	var req dto.FormatMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	members, err := h.memberUC.FormatMembers(req.Addresses)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to format members", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMembersResponse{
		Members: dto.MembersFromUseCase(members),
		Total:   int64(len(members)),
	})
}
