package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jsphweid/orchestra/constants"
	"github.com/jsphweid/orchestra/convert"
	"github.com/jsphweid/orchestra/errs"
	"github.com/jsphweid/orchestra/model"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// midi files in this domain are tens of kilobytes
const maxUploadBytes = 8 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetAddr(), "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves conversions over HTTP",
	Long: `Serves POST /convert, which takes a MIDI file as the request body and
returns the generated header. Query parameters: name, parts, tempo, timing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.WithField("addr", serveAddr).Info("Serving")
		return http.ListenAndServe(serveAddr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/health", handleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func queryOptions(r *http.Request) (string, convert.Options, error) {
	q := r.URL.Query()
	name := q.Get("name")
	if name == "" {
		name = "song"
	}

	f := conversionFlags{
		parts:      constants.DefaultMaxParts,
		timing:     constants.GetTiming(),
		workers:    1,
		idStrategy: constants.IDStrategyHash,
		name:       name,
	}
	var err error
	if v := q.Get("parts"); v != "" {
		if f.parts, err = strconv.Atoi(v); err != nil {
			return name, convert.Options{}, errors.Wrap(err, "parts")
		}
	}
	if v := q.Get("tempo"); v != "" {
		if f.tempo, err = strconv.Atoi(v); err != nil {
			return name, convert.Options{}, errors.Wrap(err, "tempo")
		}
	}
	if v := q.Get("timing"); v != "" {
		f.timing = v
	}
	opts, err := f.options()
	return name, opts, err
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	name, opts, err := queryOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	var buf bytes.Buffer
	res, err := convert.ConvertBytes(name, body, &buf, opts)
	switch {
	case errs.IsParseError(err):
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
		return
	}

	summary := res.Summary()
	logrus.WithFields(logrus.Fields{
		"song":  summary.Song,
		"notes": summary.Notes,
	}).Info("Converted upload")

	w.Header().Set("Content-Type", "text/x-c; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Descriptor.SafeName+`.h"`)
	w.Header().Set("X-Song-Id", strconv.Itoa(int(res.Descriptor.ID)))
	w.Write(buf.Bytes())
}
