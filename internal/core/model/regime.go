package model

// Label 区制的经济含义标签
type Label string

const (
	// LabelBull 上涨区制
	LabelBull Label = "Bull"
	// LabelBear 下跌区制
	LabelBear Label = "Bear"
	// LabelChop 震荡区制（无方向）
	LabelChop Label = "Chop"
)

// Labels 三区制汇总表中标签的固定顺序
var Labels = []Label{LabelBull, LabelBear, LabelChop}

// Descriptor 两区制模型中单个区制的描述
type Descriptor struct {
	// Regime 区制索引（0 或 1）
	Regime int `json:"regime"`
	// Beta0 常数项 const[i]
	Beta0 float64 `json:"beta0"`
	// Var 方差 sigma2[i]
	Var float64 `json:"var"`
	// PStay 停留概率（区制 0 为 p11，区制 1 为 p22）
	PStay float64 `json:"p_stay"`
	// PSwitch 切换概率（区制 0 为 p12，区制 1 为 p21）
	PSwitch float64 `json:"p_switch"`
}

// LabelMap 三区制标签到区制索引的映射
// 合法的 LabelMap 中三个索引互不相同
type LabelMap struct {
	Bull int `json:"Bull"`
	Bear int `json:"Bear"`
	Chop int `json:"Chop"`
}

// Index 返回标签对应的区制索引
func (m LabelMap) Index(l Label) (int, bool) {
	switch l {
	case LabelBull:
		return m.Bull, true
	case LabelBear:
		return m.Bear, true
	case LabelChop:
		return m.Chop, true
	}
	return 0, false
}

// IsBijection 三个索引是否互不相同且非负
func (m LabelMap) IsBijection() bool {
	if m.Bull < 0 || m.Bear < 0 || m.Chop < 0 {
		return false
	}
	return m.Bull != m.Bear && m.Bull != m.Chop && m.Bear != m.Chop
}
