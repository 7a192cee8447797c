package model

import "github.com/vmihailenco/msgpack/v5"

// EncodeMsgpack lets the memo cache serialize the unexported rows.
func (d *Dataset) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.Encode(d.records)
}

// DecodeMsgpack restores rows written by EncodeMsgpack.
func (d *Dataset) DecodeMsgpack(dec *msgpack.Decoder) error {
	var rows []DailyRecord
	if err := dec.Decode(&rows); err != nil {
		return err
	}
	for i := range rows {
		rows[i].Date = rows[i].Date.UTC()
	}
	d.records = rows
	return nil
}

// NormalizeTimes converts every timestamp to UTC. Decoders may hand back
// local-zone times for the same instant.
func (r *Result) NormalizeTimes() {
	for i := range r.Cumulative {
		r.Cumulative[i].Date = r.Cumulative[i].Date.UTC()
	}
}
