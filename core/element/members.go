package element

import "encoding/json"

// unknownMembers returns the members of the JSON object data that are absent
// from the JSON object known.
func unknownMembers(data, known []byte) (map[string]json.RawMessage, error) {
	var all, modelled map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(known, &modelled); err != nil {
		return nil, err
	}

	var extra map[string]json.RawMessage
	for name, raw := range all {
		if _, ok := modelled[name]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[name] = raw
	}
	return extra, nil
}

// withMembers adds the extra members that obj does not already carry.
// Modelled fields always take precedence.
func withMembers(obj []byte, extra map[string]json.RawMessage) ([]byte, error) {
	if len(extra) == 0 {
		return obj, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(obj, &members); err != nil {
		return nil, err
	}
	for name, raw := range extra {
		if _, ok := members[name]; !ok {
			members[name] = raw
		}
	}
	return json.Marshal(members)
}
