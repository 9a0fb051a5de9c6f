package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	. "github.com/ttpr0/poi-routing/util"
	"golang.org/x/exp/slog"
)

type none struct{}

var ErrEmptyBody = errors.New("empty request body")

// limit of POST request bodies in bytes
const MAX_BODY_SIZE = 1 << 20

func ReadRequestBody[T any](r *http.Request) (T, error) {
	var req T
	data, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error(err.Error())
		return req, err
	}
	if len(data) == 0 {
		return req, ErrEmptyBody
	}
	err = json.Unmarshal(data, &req)
	if err != nil {
		slog.Error(err.Error())
		return req, err
	}
	return req, nil
}

func WriteResponse[T any](w http.ResponseWriter, resp T, status int) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

type Result struct {
	result any
	status int
}

func OK[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusOK,
	}
}

func BadRequest[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusBadRequest,
	}
}

func NotFound[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusNotFound,
	}
}

func InternalError[T any](value T) Result {
	return Result{
		result: value,
		status: http.StatusInternalServerError,
	}
}

func MapPost[F any](app *mux.Router, path string, handler func(F) Result) {
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Info("POST " + path)
		r.Body = http.MaxBytesReader(w, r.Body, MAX_BODY_SIZE)
		body, err := ReadRequestBody[F](r)
		// an empty body is handled as an empty request
		if err != nil && !errors.Is(err, ErrEmptyBody) {
			slog.Error("failed POST " + err.Error())
			status := http.StatusBadRequest
			var size_err *http.MaxBytesError
			if errors.As(err, &size_err) {
				status = http.StatusRequestEntityTooLarge
			}
			WriteResponse(w, NewErrorResponse(path, err.Error()), status)
			return
		}
		res := handler(body)
		if res.status != http.StatusOK {
			slog.Error("failed POST " + path)
			WriteResponse(w, NewErrorResponse(path, res.result), res.status)
		} else {
			slog.Info("successfully finished POST")
			WriteResponse(w, res.result, res.status)
		}
	}).Methods(http.MethodPost)
}

func MapGet[F any](app *mux.Router, path string, handler func(F) Result) {
	var val F
	typ := reflect.TypeOf(val)
	num_field := typ.NumField()
	fields := NewList[Triple[int, string, reflect.Kind]](num_field)
	for i := 0; i < num_field; i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool:
			fields.Add(MakeTriple(i, tag, reflect.Bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fields.Add(MakeTriple(i, tag, reflect.Int))
		case reflect.Float32, reflect.Float64:
			fields.Add(MakeTriple(i, tag, reflect.Float64))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			fields.Add(MakeTriple(i, tag, reflect.Uint))
		case reflect.String:
			fields.Add(MakeTriple(i, tag, reflect.String))
		}
	}
	app.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		slog.Info("GET " + path)
		query := r.URL.Query()
		t := reflect.New(typ).Elem()
		for _, field := range fields {
			index := field.A
			name := field.B
			typ := field.C
			value := query.Get(name)
			if value == "" {
				continue
			}
			f := t.Field(index)
			var err error
			switch typ {
			case reflect.Bool:
				var num bool
				num, err = strconv.ParseBool(value)
				f.SetBool(num)
			case reflect.Int:
				var num int64
				num, err = strconv.ParseInt(value, 10, 64)
				f.SetInt(num)
			case reflect.Uint:
				var num uint64
				num, err = strconv.ParseUint(value, 10, 64)
				f.SetUint(num)
			case reflect.Float64:
				var num float64
				num, err = strconv.ParseFloat(value, 64)
				f.SetFloat(num)
			case reflect.String:
				f.SetString(value)
			}
			if err != nil {
				slog.Error("failed GET " + err.Error())
				WriteResponse(w, NewErrorResponse(path, fmt.Sprintf("invalid value for parameter %v", name)), http.StatusBadRequest)
				return
			}
		}
		value := t.Interface().(F)
		res := handler(value)
		if res.status != http.StatusOK {
			slog.Error("failed GET " + path)
			WriteResponse(w, NewErrorResponse(path, res.result), res.status)
		} else {
			slog.Info("successfully finished GET")
			WriteResponse(w, res.result, res.status)
		}
	}).Methods(http.MethodGet)
}

//**********************************************************
// middleware
//**********************************************************

type _StatusRecorder struct {
	http.ResponseWriter
	status int
}

func (self *_StatusRecorder) WriteHeader(status int) {
	self.status = status
	self.ResponseWriter.WriteHeader(status)
}

// Records request count and duration per route template.
func MetricsMiddleware(metrics *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &_StatusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tmpl, err := current.GetPathTemplate(); err == nil {
					route = tmpl
				}
			}
			metrics.ObserveRequest(r.Method, route, rec.status, start)
		})
	}
}
