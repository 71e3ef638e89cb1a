package domain

import "time"

// FilterAll é o valor sentinela que desativa um seletor de filtro
const FilterAll = "All"

// Row representa uma linha normalizada de um relatório de termos de
// pesquisa do Google Ads. Após a normalização, SearchTerm nunca é vazio
// e os campos numéricos nunca são nulos (default 0).
type Row struct {
	SearchTerm  string  `json:"search_term"`
	Keyword     string  `json:"keyword"`
	Campaign    string  `json:"campaign"`
	AdGroup     string  `json:"ad_group"`
	MatchType   string  `json:"match_type"`
	Impressions float64 `json:"impressions"`
	Clicks      float64 `json:"clicks"`
	Cost        float64 `json:"cost"`
	Account     string  `json:"account"`
}

// Dataset é a união ordenada das linhas de todos os arquivos enviados:
// ordem de upload dos arquivos e, dentro de cada arquivo, ordem original.
type Dataset []Row

// FilterContext representa a seleção de filtros do usuário. Valores
// vazios ou iguais a FilterAll significam "sem filtro".
type FilterContext struct {
	Account  string `json:"account"`
	Campaign string `json:"campaign"`
}

// AccountActive indica se o seletor de conta está restringindo o dataset
func (f FilterContext) AccountActive() bool {
	return f.Account != "" && f.Account != FilterAll
}

// CampaignActive indica se o seletor de campanha está restringindo o dataset
func (f FilterContext) CampaignActive() bool {
	return f.Campaign != "" && f.Campaign != FilterAll
}

// FileError registra a falha de leitura de um arquivo individual.
// O arquivo é excluído do Dataset, mas o restante do upload prossegue.
type FileError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// ReportSession é a sessão de relatórios corrente mantida em memória.
// Existe no máximo uma sessão por instância do serviço.
type ReportSession struct {
	BatchID      string      `json:"batch_id"`
	Dataset      Dataset     `json:"-"`
	Files        []string    `json:"files"`
	FileErrors   []FileError `json:"file_errors,omitempty"`
	UploadedAt   time.Time   `json:"uploaded_at"`
	LastActivity time.Time   `json:"last_activity"`
}
