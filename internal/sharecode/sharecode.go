// Package sharecode turns numeric route ids into short, non-guessable
// codes that can go into a shareable URL.
package sharecode

import (
	"fmt"

	"github.com/speps/go-hashids/v2"
)

type Generator struct {
	hid *hashids.HashID
}

func NewGenerator(salt string) (*Generator, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8

	hid, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("init hashids: %w", err)
	}
	return &Generator{hid: hid}, nil
}

func (g *Generator) Encode(routeID int64) (string, error) {
	return g.hid.EncodeInt64([]int64{routeID})
}

func (g *Generator) Decode(code string) (int64, error) {
	ids, err := g.hid.DecodeInt64WithError(code)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed share code %q", code)
	}
	return ids[0], nil
}
