// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 形式概念分析（FCA）のコアで発生する検証エラー・整合性エラー・未実装エラーを
// 構造化された型として表現し、cockroachdb/errors によるスタックトレースを付与します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("FCApy-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、LatticeSizeWarningなどのカスタム警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// LatticeSizeWarning は束の構築がサイズ上限に達し、概念の列挙が打ち切られた場合の警告です。
type LatticeSizeWarning struct {
	Algorithm string
	SizeCap   int
	Message   string
}

func (w *LatticeSizeWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s stopped at the size cap of %d concepts: %s", w.Algorithm, w.SizeCap, w.Message)
	}
	return fmt.Sprintf("%s stopped at the size cap of %d concepts. Consider increasing size_cap.", w.Algorithm, w.SizeCap)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *LatticeSizeWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("size_cap", w.SizeCap).
		Str("detail", w.Message).
		Str("type", "LatticeSizeWarning")
}

// NewLatticeSizeWarning は新しいLatticeSizeWarningを作成します。
func NewLatticeSizeWarning(algorithm string, sizeCap int, message string) *LatticeSizeWarning {
	return &LatticeSizeWarning{Algorithm: algorithm, SizeCap: sizeCap, Message: message}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `PredictProba` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("fcapy: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
// Axis 0 はオブジェクト（行）、Axis 1 は属性（列）を表します。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

func (e *DimensionError) axisName() string {
	if e.Axis == 0 {
		return "objects"
	}
	return "attributes"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("fcapy: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, e.axisName(), e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", e.axisName()).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// 名前の重複や型宣言の欠落など、構築時に検出される形状・検証エラーを表します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("fcapy: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("fcapy: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は予測モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fcapy: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("fcapy: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// InconsistentGeneratorsError はジェネレータを集約した結果、下限が上限を超えた場合のエラーです。
type InconsistentGeneratorsError struct {
	PatternStructure string
	Lower            float64
	Upper            float64
}

func (e *InconsistentGeneratorsError) Error() string {
	return fmt.Sprintf("fcapy: %s: inconsistent generators: aggregated lower bound %g exceeds upper bound %g",
		e.PatternStructure, e.Lower, e.Upper)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InconsistentGeneratorsError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("pattern_structure", e.PatternStructure).
		Float64("lower", e.Lower).
		Float64("upper", e.Upper).
		Str("type", "InconsistentGeneratorsError")
}

// NewInconsistentGeneratorsError は新しいInconsistentGeneratorsErrorを作成し、スタックトレースを付与します。
func NewInconsistentGeneratorsError(ps string, lower, upper float64) error {
	err := &InconsistentGeneratorsError{PatternStructure: ps, Lower: lower, Upper: upper}
	return errors.WithStack(err)
}

// ContextMismatchError は異なる名前集合を持つ2つのコンテキストを比較した場合のエラーです。
// 比較結果 false ではなくエラーとして扱います。
type ContextMismatchError struct {
	Field string // "object_names" または "attribute_names"
}

func (e *ContextMismatchError) Error() string {
	return fmt.Sprintf("fcapy: two contexts can not be compared since they have different %s", e.Field)
}

// NewContextMismatchError は新しいContextMismatchErrorを作成し、スタックトレースを付与します。
func NewContextMismatchError(field string) error {
	err := &ContextMismatchError{Field: field}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrNotImplemented は機能が未実装の場合のエラーです（シリアライズ系の操作）。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrNoMatchingConcepts はオブジェクトに一致する概念が1つもトレースされなかった場合のエラーです。
	// 統計量が「存在しない」ことを示す値とは区別されます。
	ErrNoMatchingConcepts = New("no matching concepts")

	// ErrAlreadyFitted は学習済みのモデルを再学習しようとした場合のエラーです。
	ErrAlreadyFitted = New("model is already fitted")
)
