package requests

import pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"

var ErrUnknownAction = pkgerrors.New(pkgerrors.CodeNotFound, "unknown request action")
