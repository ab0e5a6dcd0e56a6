package common

import (
	"github.com/Station-Manager/errors"
	"github.com/Station-Manager/xmladapters/converters"
	"github.com/google/uuid"
)

// UUIDAdapter binds a canonical UUID string to a uuid.UUID.
type UUIDAdapter struct{}

func (UUIDAdapter) Unmarshal(v string) (uuid.UUID, error) {
	const op errors.Op = "converters.common.UUIDAdapter.Unmarshal"
	srcVal, err := converters.CheckString(op, v)
	if err != nil {
		return uuid.Nil, errors.New(op).Err(err).Msg(converters.ErrMsgBadUUID)
	}
	id, err := uuid.Parse(srcVal)
	if err != nil {
		return uuid.Nil, errors.New(op).Err(err).Msg(converters.ErrMsgBadUUID)
	}
	return id, nil
}

func (UUIDAdapter) Marshal(b uuid.UUID) (string, error) {
	return b.String(), nil
}
