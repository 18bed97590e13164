package analysis

import "strings"

// InvalidFormatMessage is shown when the user input is not "owner/repo".
const InvalidFormatMessage = "Invalid format. Use 'owner/repo'"

// AnalysisRequest identifies the repository to analyze. It only lives for the
// duration of one analyze call.
type AnalysisRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// Slug returns the canonical "owner/repo" form.
func (r AnalysisRequest) Slug() string {
	return r.Owner + "/" + r.Repo
}

// ParseRequest splits input on the first '/' into owner and repo. Both halves
// are trimmed and must be non-empty, and the repo half must not contain a
// further separator.
func ParseRequest(input string) (AnalysisRequest, error) {
	owner, repo, ok := strings.Cut(input, "/")
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)

	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return AnalysisRequest{}, &Error{
			Kind:    InvalidFormat,
			Message: InvalidFormatMessage,
		}
	}
	return AnalysisRequest{Owner: owner, Repo: repo}, nil
}
