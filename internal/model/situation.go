package model

import "time"

// Situation is the lifecycle state of an information request.
type Situation string

const (
	SituationIntake         Situation = "AI" // initial triage
	SituationSourcing       Situation = "BI" // gathering the information
	SituationDraftingOpine  Situation = "EP" // drafting the written opinion
	SituationDecidingAnswer Situation = "DR" // deciding the initial response
	SituationAnswered       Situation = "PR" // request answered
	SituationFirstAppeal    Situation = "AR" // reviewing first appeal
	SituationFirstAnswered  Situation = "RR" // first appeal answered
	SituationSecondAppeal   Situation = "AF" // reviewing second appeal
	SituationFinal          Situation = "RF" // final appeal answered, terminal
)

// situationLabels maps each situation to its display name.
var situationLabels = map[Situation]string{
	SituationIntake:         "Análise Inicial",
	SituationSourcing:       "Buscando Informações",
	SituationDraftingOpine:  "Elaborando Parecer",
	SituationDecidingAnswer: "Definindo Resposta",
	SituationAnswered:       "Pedido Respondido",
	SituationFirstAppeal:    "Analisando Recurso",
	SituationFirstAnswered:  "Recurso Respondido",
	SituationSecondAppeal:   "Analisando Recurso Final",
	SituationFinal:          "Recurso Final Respondido",
}

// forwardTransitions is the complete transition graph. Situations only move
// forward; there is no backward edge.
var forwardTransitions = map[Situation]Situation{
	SituationIntake:         SituationSourcing,
	SituationSourcing:       SituationDraftingOpine,
	SituationDraftingOpine:  SituationDecidingAnswer,
	SituationDecidingAnswer: SituationAnswered,
	SituationAnswered:       SituationFirstAppeal,
	SituationFirstAppeal:    SituationFirstAnswered,
	SituationFirstAnswered:  SituationSecondAppeal,
	SituationSecondAppeal:   SituationFinal,
}

// Valid reports whether s is one of the nine defined situations.
func (s Situation) Valid() bool {
	_, ok := situationLabels[s]
	return ok
}

// Label returns the human-facing name of the situation.
func (s Situation) Label() string {
	return situationLabels[s]
}

// Next returns the situation that follows s in the lifecycle, or "" when s
// is terminal.
func (s Situation) Next() Situation {
	return forwardTransitions[s]
}

// Terminal reports whether no further transition exists from s.
// PR and RR become effectively terminal once their appeal windows lapse,
// but only RF is terminal unconditionally.
func (s Situation) Terminal() bool {
	return s == SituationFinal
}

// CanAppeal is the appeal-eligibility predicate, used identically for both
// appeal tiers: the deadline must be set, not yet passed, and the record
// must still sit in the expected situation. An unset deadline always means
// no appeal.
func CanAppeal(deadline *time.Time, now time.Time, current, expected Situation) bool {
	return deadline != nil && !now.After(*deadline) && current == expected
}
