package statsclient

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/dalemusser/visitorstats/internal/domain/models"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode parses a GET /onlinesInfo body.
//
// The fields may sit at the top level or inside a "data" envelope; both forms
// produce the same Payload. The onlinesStats tree is read with the streaming
// iterator so that children keep the document's key order.
func Decode(body []byte) (*models.Payload, error) {
	iter := json.BorrowIterator(body)
	defer json.ReturnIterator(iter)

	if iter.WhatIsNext() != jsoniter.ObjectValue {
		return nil, ErrNotObject
	}

	p := &models.Payload{}
	readPayloadFields(iter, p)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, fmt.Errorf("decode onlinesInfo: %w", iter.Error)
	}
	return p, nil
}

func readPayloadFields(iter *jsoniter.Iterator, p *models.Payload) {
	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		switch field {
		case "computedAt":
			it.ReadVal(&p.ComputedAt)
		case "onlinesStats":
			p.OnlinesStats = readNode(it, field)
		case "timeSeriesStats":
			it.ReadVal(&p.TimeSeries)
		case "statisticalInferences":
			it.ReadVal(&p.Inferences)
		case "data":
			if it.WhatIsNext() == jsoniter.ObjectValue {
				readPayloadFields(it, p)
			} else {
				it.Skip()
			}
		default:
			it.Skip()
		}
		return it.Error == nil
	})
}

// readNode reads any JSON value as a tree node. A repeated object key keeps
// the position of its first occurrence and the value of its last.
func readNode(iter *jsoniter.Iterator, key string) *models.Node {
	switch iter.WhatIsNext() {
	case jsoniter.ObjectValue:
		n := models.NewObject(key)
		seen := make(map[string]int)
		iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
			child := readNode(it, field)
			if i, ok := seen[field]; ok {
				n.Children[i] = child
			} else {
				seen[field] = len(n.Children)
				n.Children = append(n.Children, child)
			}
			return it.Error == nil
		})
		return n
	case jsoniter.ArrayValue:
		n := models.NewObject(key)
		i := 0
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			n.Children = append(n.Children, readNode(it, strconv.Itoa(i)))
			i++
			return it.Error == nil
		})
		return n
	case jsoniter.NumberValue:
		v := iter.ReadFloat64()
		if math.IsInf(v, 0) {
			return &models.Node{Key: key, Kind: models.KindInvalid, Raw: strconv.FormatFloat(v, 'g', -1, 64)}
		}
		return models.NewNumber(key, v)
	default:
		raw := iter.SkipAndReturnBytes()
		return &models.Node{Key: key, Kind: models.KindInvalid, Raw: string(raw)}
	}
}
