package loader

// Positional column layout of the exported SSA report. The export carries no
// stable header names across system versions, so rows are resolved by index
// and mapped to named ServiceOrder fields here, at the loading boundary.
const (
	ColNumber = iota
	ColSituation
	ColDerivedFrom
	ColLocation
	ColLocationDesc
	ColEquipment
	ColRegistrationWeek
	ColIssuedAt
	ColDescription
	ColIssuerSector
	ColExecutorSector
	ColRequester
	ColOriginService
	ColIssuePriority
	ColPlanningPriority
	ColSimpleExecution
	ColSchedulingResponsible
	ColPlannedWeek
	ColExecutionResponsible
	ColExecutionDesc
	ColOriginSystem
	ColAnomaly

	columnCount
)

var columnNames = map[int]string{
	ColNumber:                "Número da SSA",
	ColSituation:             "Situação",
	ColDerivedFrom:           "Derivada de",
	ColLocation:              "Localização",
	ColLocationDesc:          "Descrição da Localização",
	ColEquipment:             "Equipamento",
	ColRegistrationWeek:      "Semana de Cadastro",
	ColIssuedAt:              "Emitida Em",
	ColDescription:           "Descrição da SSA",
	ColIssuerSector:          "Setor Emissor",
	ColExecutorSector:        "Setor Executor",
	ColRequester:             "Solicitante",
	ColOriginService:         "Serviço de Origem",
	ColIssuePriority:         "Grau de Prioridade Emissão",
	ColPlanningPriority:      "Grau de Prioridade Planejamento",
	ColSimpleExecution:       "Execução Simples",
	ColSchedulingResponsible: "Responsável na Programação",
	ColPlannedWeek:           "Semana Programada",
	ColExecutionResponsible:  "Responsável na Execução",
	ColExecutionDesc:         "Descrição Execução",
	ColOriginSystem:          "Sistema de Origem",
	ColAnomaly:               "Anomalia",
}

// ColumnName returns the display name of a column index.
func ColumnName(index int) string {
	if name, ok := columnNames[index]; ok {
		return name
	}
	return "?"
}
