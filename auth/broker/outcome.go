package broker

import (
	goerrors "github.com/goliatone/go-errors"
	"github.com/viant/hostbridge/auth/provider"
)

// Kind tags an Outcome.
type Kind int

const (
	Granted Kind = iota
	ReauthenticationRequired
	Failed
)

func (k Kind) String() string {
	switch k {
	case Granted:
		return "granted"
	case ReauthenticationRequired:
		return "reauthenticationRequired"
	default:
		return "failed"
	}
}

// Request is the sole input of a token acquisition.
type Request struct {
	ForceRefresh bool `json:"forceRefresh,omitempty"`
}

// Outcome is produced exactly once per request.
type Outcome struct {
	Kind    Kind
	Token   string // set when Granted
	Message string // set when Failed or ReauthenticationRequired
	Err     error
}

// Error converts a non-granted outcome into an error; it returns nil when Granted.
func (o *Outcome) Error() error {
	switch o.Kind {
	case Granted:
		return nil
	case ReauthenticationRequired:
		if o.Err != nil {
			return o.Err
		}
		return goerrors.New(o.Message, goerrors.CategoryAuth).WithTextCode(provider.TextCodeReauthenticationRequired)
	default:
		if o.Err != nil {
			return o.Err
		}
		return goerrors.New(o.Message, goerrors.CategoryExternal)
	}
}

func granted(token string) *Outcome {
	return &Outcome{Kind: Granted, Token: token}
}

func failed(err error) *Outcome {
	return &Outcome{Kind: Failed, Message: provider.Message(err), Err: err}
}

func reauthenticationRequired(err error) *Outcome {
	return &Outcome{Kind: ReauthenticationRequired, Message: provider.Message(err), Err: err}
}
