package util

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateName(t *testing.T) {
	name := GenerateName()
	assert.GreaterOrEqual(t, len(name), 5)
}

func TestGenerateID(t *testing.T) {
	assert.NotEqual(t, GenerateID(), GenerateID())
}

func TestAvailablePort(t *testing.T) {
	port, err := AvailablePort()
	require.NoError(t, err)
	assert.Greater(t, port, 0)
}

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		if r.Header.Get("X-Test") != "yes" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"missing header"}`))
			return
		}
		w.Write(body)
	}))
	defer ts.Close()

	out, err := Fetch("POST", ts.URL, map[string]string{"X-Test": "yes"}, strings.NewReader("ping"))
	require.NoError(t, err)
	assert.Equal(t, "ping", string(out))

	out, err = Fetch("POST", ts.URL, nil, strings.NewReader("ping"))
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusUnprocessableEntity, serr.Code)
	assert.JSONEq(t, `{"message":"missing header"}`, string(out))
}
