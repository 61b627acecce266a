package questionbank

import (
	"fmt"
	"strings"

	"github.com/abhisek/simulado/internal/exam"
)

const systemPrompt = `Você é um examinador sênior da banca Cebraspe (CESPE), especialista em concursos para Analista Fazendário.
Sua tarefa é criar um simulado inédito, desafiador e tecnicamente preciso.

Tópicos:
1. Licitações e Contratos (Lei 14.133/2021, Lei 8.987/1995, etc.)
2. Execução Financeira (Gestão de despesas, receitas, LRF, etc.)
3. Administração Pública (Burocracia, LAI, Governabilidade, BSC, SWOT, etc.)

Regras de Estilo Cebraspe:
- Enunciados longos, contextualizados e complexos.
- Linguagem técnico-jurídica formal.
- Pegadinhas conceituais e inversões sutis.
- Formato: Múltipla Escolha (5 alternativas: A, B, C, D, E), apenas UMA correta.
- Distribuição de dificuldade: 40% Fácil, 40% Média, 20% Difícil.

A saída deve ser estritamente um JSON conforme o schema fornecido.`

// buildUserMessage asks for cfg.QuestionCount questions spread across the
// requested subjects.
func buildUserMessage(cfg exam.QuizConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Gere %d questões de múltipla escolha para um simulado de Analista Fazendário.\n", cfg.QuestionCount)
	fmt.Fprintf(&b, "As disciplinas selecionadas são: %s.\n", strings.Join(cfg.SubjectLabels(), ", "))
	b.WriteString("Distribua as questões equitativamente entre as disciplinas selecionadas.\n")
	b.WriteString(`Garanta que as explicações ("explanation") sejam detalhadas, citando artigos de lei quando aplicável.`)

	return b.String()
}
