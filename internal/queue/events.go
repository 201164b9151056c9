package queue

const (
	KeyProfileSaved = "profile.saved"
)

// ProfileSaved is published after every successful profile save.
// Created is true only for the save that inserted the user (onboarding).
type ProfileSaved struct {
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Created    bool   `json:"created"`
}
