package service

import (
	"strings"

	"rollingpaper/internal/model"

	"golang.org/x/crypto/bcrypt"
)

// Authorizer decides who may manage boards and messages. Admins are matched by email, ignoring case.
type Authorizer struct {
	admins map[string]struct{}
}

func NewAuthorizer(adminEmails []string) *Authorizer {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &Authorizer{admins: admins}
}

func (a *Authorizer) IsAdmin(caller *model.Identity) bool {
	if caller == nil || caller.Email == "" {
		return false
	}
	_, ok := a.admins[strings.ToLower(caller.Email)]
	return ok
}

// CanManageBoard covers settings changes and deletion.
func (a *Authorizer) CanManageBoard(caller *model.Identity, board *model.Board) bool {
	if caller == nil {
		return false
	}
	return board.IsCreator(caller.UID) || a.IsAdmin(caller)
}

// CanModifyMessage covers editing and deleting a message.
func (a *Authorizer) CanModifyMessage(caller *model.Identity, message *model.Message) bool {
	if caller == nil {
		return false
	}
	return message.IsAuthor(caller.UID) || a.IsAdmin(caller)
}

// CheckAccess is the board's front-door password gate. Open boards admit everyone.
func CheckAccess(board *model.Board, password string) bool {
	if !board.HasPassword() {
		return true
	}
	return bcrypt.CompareHashAndPassword([]byte(*board.PasswordHash), []byte(password)) == nil
}

func hashPassword(password string) (*string, error) {
	if password == "" {
		return nil, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s := string(hash)
	return &s, nil
}
