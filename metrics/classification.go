package metrics

import (
	"math"

	"github.com/YuminosukeSato/scistat/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ConfusionCounts は二値分類の混同行列の各セルの件数
type ConfusionCounts struct {
	TP int // 真陽性
	FP int // 偽陽性
	FN int // 偽陰性
	TN int // 真陰性
}

// NewConfusionCounts は 0/1 ラベルの列ベクトルから混同行列を数える
func NewConfusionCounts(yTrue, yPred mat.Matrix) (ConfusionCounts, error) {
	t, p, err := columns("NewConfusionCounts", yTrue, yPred)
	if err != nil {
		return ConfusionCounts{}, err
	}
	if err := requireBinary("NewConfusionCounts", t); err != nil {
		return ConfusionCounts{}, err
	}
	if err := requireBinary("NewConfusionCounts", p); err != nil {
		return ConfusionCounts{}, err
	}

	var c ConfusionCounts
	for i := range t {
		switch {
		case t[i] == 1 && p[i] == 1:
			c.TP++
		case t[i] == 0 && p[i] == 1:
			c.FP++
		case t[i] == 1 && p[i] == 0:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Total は全件数
func (c ConfusionCounts) Total() int {
	return c.TP + c.FP + c.FN + c.TN
}

// Accuracy は正解率 (TP + TN) / 全件数
func Accuracy(c ConfusionCounts) (float64, error) {
	if c.Total() == 0 {
		return 0, undefined("accuracy", "no samples")
	}
	return float64(c.TP+c.TN) / float64(c.Total()), nil
}

// Precision は適合率 TP / (TP + FP)
func Precision(c ConfusionCounts) (float64, error) {
	if c.TP+c.FP == 0 {
		return 0, undefined("precision", "no predicted samples")
	}
	return float64(c.TP) / float64(c.TP+c.FP), nil
}

// Recall は再現率 TP / (TP + FN)
func Recall(c ConfusionCounts) (float64, error) {
	if c.TP+c.FN == 0 {
		return 0, undefined("recall", "no true samples")
	}
	return float64(c.TP) / float64(c.TP+c.FN), nil
}

// F1Score は適合率と再現率の調和平均
func F1Score(c ConfusionCounts) (float64, error) {
	p, err := Precision(c)
	if err != nil {
		return 0, err
	}
	r, err := Recall(c)
	if err != nil {
		return 0, err
	}
	if p+r == 0 {
		return 0, undefined("f-score", "precision and recall both zero")
	}
	return 2 * p * r / (p + r), nil
}

// AccuracyScore は予測ラベルが一致した割合（多クラス可）
func AccuracyScore(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columns("AccuracyScore", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := range t {
		if t[i] == p[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(t)), nil
}

// ClassificationError は 1 - AccuracyScore
func ClassificationError(yTrue, yPred mat.Matrix) (float64, error) {
	acc, err := AccuracyScore(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BinaryLogLoss は二値交差エントロピーの平均を計算する
// log(0) を避けるため予測確率を [eps, 1-eps] に切り詰める
func BinaryLogLoss(yTrue, yProba mat.Matrix) (float64, error) {
	t, p, err := columns("BinaryLogLoss", yTrue, yProba)
	if err != nil {
		return 0, err
	}
	if err := requireBinary("BinaryLogLoss", t); err != nil {
		return 0, err
	}

	const eps = 1e-15
	var sum float64
	for i := range t {
		q := math.Min(math.Max(p[i], eps), 1-eps)
		if t[i] == 1 {
			sum -= math.Log(q)
		} else {
			sum -= math.Log(1 - q)
		}
	}
	return sum / float64(len(t)), nil
}

func requireBinary(op string, labels []float64) error {
	for _, v := range labels {
		if v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be 0 or 1")
		}
	}
	return nil
}

// undefined は分母がゼロの指標に対する警告を返す。値は 0 とする
func undefined(metric, condition string) error {
	return errors.WithStack(errors.NewUndefinedMetricWarning(metric, condition, 0))
}
