package feedback

import "github.com/alexanderramin/placar/internal/domain"

// Feedback is what the board shows for the current value.
type Feedback struct {
	Stage     domain.Stage
	Message   string
	Emoji     string
	MetGoal   bool
	Regressed bool
}

type phrase struct {
	message string
	emoji   string
	metGoal bool
}

var phrases = [domain.StageCount]phrase{
	domain.StageStart:       {"Ponto de partida. Bora virar o Flash!", "💤", false},
	domain.StageWaiting:     {"O cliente está esperando...", "⏳", false},
	domain.StageSlowMotion:  {"Ainda em câmera lenta...", "🐢", false},
	domain.StageWarmingUp:   {"Esquentando os motores!", "🔥", false},
	domain.StagePickingUp:   {"Pegando velocidade!", "🏃", false},
	domain.StageAlmostThere: {"Quase no ritmo do Flash!", "⚡", false},
	domain.StageGoalMet:     {"Você É o Flash! Meta batida!", "🏃‍♂️💨", true},
	domain.StageBeyondGoal:  {"Além da meta! O cliente está sorrindo!", "🎉", true},
}

var regressedPhrase = phrase{"Voltamos acima do ponto de partida. Hora de reagir!", "📉", false}

// For returns the feedback for value. A value above the initial goal is
// still stage 0 but carries the regressed phrase.
func For(value float64, b Bands) Feedback {
	stage := StageFor(value, b)
	p := phrases[stage]
	regressed := value > b.Initial
	if regressed {
		p = regressedPhrase
	}
	return Feedback{
		Stage:     stage,
		Message:   p.message,
		Emoji:     p.emoji,
		MetGoal:   p.metGoal,
		Regressed: regressed,
	}
}

// Message returns the stage phrase without regression handling.
func Message(stage domain.Stage) string {
	return phrases[stage.Clamp()].message
}
