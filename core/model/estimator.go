package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Scorer はモデルを評価できるインターフェース
// 回帰では決定係数、分類では正解率を返す
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// Regressor は回帰モデル
type Regressor interface {
	Fitter
	Predictor
	Scorer
}

// Classifier は二値分類モデル
type Classifier interface {
	Regressor

	// PredictProba は各標本が陽性である確率を返す
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X mat.Matrix) error

	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X mat.Matrix) (mat.Matrix, error)

	// InverseTransform は変換を元に戻す
	InverseTransform(X mat.Matrix) (mat.Matrix, error)
}

// Clusterer は教師なしでクラスタを学習するモデル
// Predict は各標本のクラスタ番号を返す
type Clusterer interface {
	// Fit はラベルなしのデータでクラスタを学習する
	Fit(X mat.Matrix) error

	Predictor
}
