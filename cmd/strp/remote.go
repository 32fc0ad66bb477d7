package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/HammadMal/STRP-1/internal/engine"
	"github.com/HammadMal/STRP-1/internal/util"
	"github.com/HammadMal/STRP-1/internal/xlsx"
)

// localScorer reads a workbook and scores it in process.
func localScorer(eng *engine.Engine) scoreFunc {
	return func(_ context.Context, path string) (*engine.Run, error) {
		g, err := xlsx.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return eng.Process(g, filepath.Base(path))
	}
}

//
// remoteScorer reads a workbook locally and sends its grid to the
// /outcomes endpoint of a running strp-service at addr (host:port or
// a full url).
//
func remoteScorer(addr string) scoreFunc {
	url := strings.TrimSuffix(addr, "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	url += "/outcomes"

	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}

	return func(_ context.Context, path string) (*engine.Run, error) {
		g, err := xlsx.ReadFile(path)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(map[string]interface{}{
			"filename": filepath.Base(path),
			"grid":     g,
		})
		if err != nil {
			return nil, errors.Wrap(err, "cannot encode grid")
		}

		res, err := util.Fetch("POST", url, headers, bytes.NewReader(payload))
		if err != nil {
			if msg := gjson.GetBytes(res, "message"); msg.Exists() {
				return nil, errors.Errorf("%s: %s", filepath.Base(path), msg.String())
			}
			return nil, err
		}
		return decodeRemote(res)
	}
}

func decodeRemote(res []byte) (*engine.Run, error) {
	report := gjson.GetBytes(res, "report")
	if !report.IsObject() {
		return nil, errors.New("service response has no report")
	}
	run := &engine.Run{}
	if err := json.Unmarshal([]byte(report.Raw), run); err != nil {
		return nil, errors.Wrap(err, "cannot decode service report")
	}
	if run.Report == nil || run.Result == nil {
		return nil, errors.New("service report is incomplete")
	}
	return run, nil
}
