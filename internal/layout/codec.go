package layout

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// FormatVersion tags encoded records. A cookie carrying any other version is
// treated as absent.
const FormatVersion = "1"

const (
	keyVersion     = "v"
	keyPanels      = "p"
	keyGroupPrefix = "g."
)

// positionalID names a sized child that has no id of its own.
func positionalID(index int) string {
	return "#" + strconv.Itoa(index)
}

// Encode serializes a record into a cookie-safe string:
//
//	v=1&p=<id>:<0|1>,...&g.<group>=<id>:<size>,...
//
// Ids and group keys are query-escaped, then the whole value is query-encoded
// again, so the result contains only cookie-value characters. Panel ids and
// group keys are written in sorted order.
func Encode(r Record) string {
	values := url.Values{}
	values.Set(keyVersion, FormatVersion)

	if len(r.Panels) > 0 {
		ids := make([]string, 0, len(r.Panels))
		for id := range r.Panels {
			ids = append(ids, id)
		}
		slices.Sort(ids)

		entries := make([]string, 0, len(ids))
		for _, id := range ids {
			flag := "0"
			if r.Panels[id] {
				flag = "1"
			}
			entries = append(entries, url.QueryEscape(id)+":"+flag)
		}
		values.Set(keyPanels, strings.Join(entries, ","))
	}

	for key, group := range r.Groups {
		if len(group.Sizes) == 0 {
			continue
		}
		entries := make([]string, 0, len(group.Sizes))
		for i, size := range group.Sizes {
			id := positionalID(i)
			if group.Keyed() && group.IDs[i] != "" {
				id = group.IDs[i]
			}
			entries = append(entries, url.QueryEscape(id)+":"+strconv.FormatFloat(size, 'f', -1, 64))
		}
		values.Set(keyGroupPrefix+url.QueryEscape(key), strings.Join(entries, ","))
	}

	// url.Values.Encode sorts keys, which keeps the output stable.
	return values.Encode()
}

// Decode parses a string produced by Encode. An empty string decodes to an
// empty record without error. Any structural problem returns an error and an
// empty record, so callers can fall back to defaults.
func Decode(value string) (Record, error) {
	record := NewRecord()
	if strings.TrimSpace(value) == "" {
		return record, nil
	}

	values, err := url.ParseQuery(value)
	if err != nil {
		return NewRecord(), fmt.Errorf("parsing layout record: %w", err)
	}

	if v := values.Get(keyVersion); v != FormatVersion {
		return NewRecord(), fmt.Errorf("unsupported layout record version %q", v)
	}

	if raw := values.Get(keyPanels); raw != "" {
		for _, entry := range strings.Split(raw, ",") {
			id, flag, err := splitEntry(entry)
			if err != nil {
				return NewRecord(), fmt.Errorf("panel entry %q: %w", entry, err)
			}
			switch flag {
			case "1":
				record.Panels[id] = true
			case "0":
				record.Panels[id] = false
			default:
				return NewRecord(), fmt.Errorf("panel entry %q: flag must be 0 or 1", entry)
			}
		}
	}

	for key, list := range values {
		if !strings.HasPrefix(key, keyGroupPrefix) || len(list) == 0 {
			continue
		}
		groupKey, err := url.QueryUnescape(strings.TrimPrefix(key, keyGroupPrefix))
		if err != nil || groupKey == "" {
			return NewRecord(), fmt.Errorf("invalid group key %q", key)
		}

		var group GroupSizes
		for _, entry := range strings.Split(list[0], ",") {
			id, rawSize, err := splitEntry(entry)
			if err != nil {
				return NewRecord(), fmt.Errorf("group %q entry %q: %w", groupKey, entry, err)
			}
			size, err := parseSize(rawSize)
			if err != nil {
				return NewRecord(), fmt.Errorf("group %q entry %q: %w", groupKey, entry, err)
			}
			group.IDs = append(group.IDs, id)
			group.Sizes = append(group.Sizes, size)
		}
		record.Groups[groupKey] = group
	}

	return record, nil
}

func splitEntry(entry string) (string, string, error) {
	i := strings.LastIndexByte(entry, ':')
	if i < 0 || i == len(entry)-1 {
		return "", "", fmt.Errorf("expected <id>:<value>")
	}
	id, err := url.QueryUnescape(entry[:i])
	if err != nil {
		return "", "", err
	}
	return id, entry[i+1:], nil
}

func parseSize(raw string) (float64, error) {
	size, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(size) || math.IsInf(size, 0) || size < 0 || size > 100 {
		return 0, fmt.Errorf("size %v out of range 0-100", size)
	}
	return size, nil
}
