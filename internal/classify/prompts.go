package classify

import (
	"fmt"
	"strings"

	"VideoClassifier/internal/domain"
)

// NonTechnicalSentinel is the exact sentence the contextualization stage must
// return for videos without teachable technical content.
const NonTechnicalSentinel = "O vídeo não apresenta conteúdo técnico ensinável."

// InvalidSentinel is what the tool and topic stages return when no accepted
// classification is evidenced.
const InvalidSentinel = "invalido"

const noDescriptionPlaceholder = "Sem descrição"

const synopsisPromptFmt = `Você é um contextualizador técnico avançado de vídeos educacionais de tecnologia.
Sua função é ler o título, descrição e nome do canal e produzir uma sinopse técnica limpa, eliminando todo ruído.

======================================================
OBJETIVO
======================================================
Gerar um resumo técnico confiável, eliminando completamente ruídos promocionais e elementos irrelevantes, deixando apenas os dados úteis para que modelos futuros consigam classificar corretamente qual tecnologia e operação o vídeo ensina.

======================================================
DETECÇÃO NÃO TÉCNICO
======================================================
Antes de gerar a sinopse, determine se o vídeo é realmente técnico.

O vídeo NÃO É TÉCNICO quando:
- não há demonstração, explicação ou ensino de tecnologia
- o conteúdo serve apenas para:
    - marketing, divulgação, anúncio, promoção, venda
    - sorteios, eventos, chamadas de live
    - carreira, mindset, motivação, trajetória
    - memes, humor, storytelling, dramatização
    - opinião, review, comparação de cursos/serviços
    - vlog, rotina, dia a dia
    - temas aspiracionais (ex.: "destrave sua carreira", "oportunidade", "novo lote")

Se o vídeo NÃO for técnico, retorne EXATAMENTE:

"%s"

E nada mais. NÃO gere sinopse. NÃO cite tecnologia. NÃO tente extrair nada técnico.

======================================================
REGRAS ABSOLUTAS
======================================================
1. Não invente tecnologias. Só cite ferramentas, bibliotecas, frameworks ou conceitos SE estiverem explicitamente presentes no título ou descrição.
2. IGNORE COMPLETAMENTE qualquer trecho que não seja técnico: links, redes sociais, cursos, pedidos de inscrição, dicas de carreira, eventos, autopromoções, anúncios, emojis, listas genéricas de palavras-chave, agradecimentos, textos motivacionais.
3. O nome do canal NUNCA é prova de qual tecnologia o vídeo usa. Use-o apenas como reforço contextual.
4. Nunca classifique trilha, não classifique ferramenta final, não gere JSON.
5. A sinopse deve ser 100%% técnica, objetiva e orientada ao que é ENSINADO no vídeo.
6. Se houver ambiguidade, escolha SEMPRE a interpretação mais específica sustentada pelo texto.

======================================================
ENTRADAS DO VÍDEO
======================================================
Título: %s
Descrição: %s
Nome do canal: %s

======================================================
SAÍDA OBRIGATÓRIA
======================================================
Produza apenas um parágrafo de sinopse técnica, com no máximo 8-12 linhas, contendo: a ferramenta principal citada, subferramentas e bibliotecas mencionadas, conceitos técnicos centrais, a operação prática demonstrada e qualquer detalhe técnico que ajude o classificador a entender o que está sendo ensinado. Absolutamente nenhum ruído promocional.

AGORA GERE A SINOPSE TÉCNICA BASEADA NOS DADOS DO VÍDEO.`

// acceptedTools is the fixed allow-list enumerated verbatim in the tool prompt.
const acceptedTools = `Python | Java | C | C++ | JavaScript | TypeScript | PHP | Go | Rust | Kotlin | Swift | SQL | HTML | CSS
React | Angular | Vue | Next.js | Node.js | Spring Boot | FastAPI | Express | GraphQL | Flutter | Tailwind CSS | Jetpack Compose | Vite | Pandas | dbt | Spark | TensorFlow | MLflow | Laravel
Machine Learning | Deep Learning
MongoDB
Linux
Docker | Kubernetes | Airflow | Jenkins | GitHub Actions | Terraform
AWS | Azure Data Factory | GCP Dataflow
Excel | Power BI | Tableau | Grafana
RabbitMQ | Kafka
JWT | OAuth2
Prometheus
Xcode | SwiftUI | React Native
Git | REST APIs | Cypress | Postman | Selenium | JUnit | Espresso | JMeter`

const toolPromptFmt = `Você é um especialista em classificação de conteúdo educacional de tecnologia e programação do YouTube brasileiro.
Você receberá APENAS uma SINOPSE TÉCNICA PURIFICADA — um texto curto, objetivo, sem ruído, descrevendo exatamente o que o vídeo ensina. Essa sinopse já removeu promoções, links, tags irrelevantes e palavras-chave de SEO.

OBJETIVO:
Extrair a FERRAMENTA PRINCIPAL ensinada no vídeo da sinopse técnica fornecida, seguindo exclusivamente a lista de tecnologias aceitas do sistema.

REGRAS CRÍTICAS:
1. Use SOMENTE o que está explícito na sinopse.
2. NÃO invente tecnologias.
3. NUNCA invente ou presuma tecnologias não mencionadas.

LISTA TECNOLOGIAS ACEITAS (use EXATAMENTE estes nomes):
%s

---

VÍDEO A ANALISAR:
Sinopse Técnica: %s

---

INFERÊNCIA PERMITIDA:
Use seu conhecimento prévio para identificar relações entre ferramentas e suas tecnologias base, apenas quando a relação for direta e oficial e a tecnologia base estiver na lista:
- BullMQ → roda em Node.js → tecnologia_base: Node.js
- Pandas → biblioteca Python → tecnologia_base: Python
- DAX → linguagem do Power BI → tecnologia_base: Power BI
- nftables → comando do Linux → tecnologia_base: Linux
- Express → framework Node.js → tecnologia_base: Node.js
- VBA → roda em Excel → tecnologia_base: Excel

REGRAS:
- Classifique sempre no nível da TECNOLOGIA PRINCIPAL (não o comando ou conceito).
- Evite conceitos abstratos (loops, algoritmos, ponteiros).
- Se o vídeo ensinar uma funcionalidade de uma tecnologia, classifique pela tecnologia.
- Se houver dúvida entre duas, escolha a mais abrangente.

RESPONDA APENAS COM JSON (sem markdown, sem explicações):

{
    "ferramenta_principal": "nome_exato_da_lista_ou_%s",
    "tecnologia_base": "tecnologia_mais_ampla_ou_ecossistema_da_lista",
    "confianca": "alta/media/baixa",
    "categoria": "linguagem/framework/sistema_operacional/banco_dados/cloud/bi_analytics/outra"
}

Se a sinopse técnica não fornecer nenhum termo técnico ou pista inequívoca que identifique uma ferramenta da lista, a classificação DEVE ser "%s".`

const topicPromptFmt = `Você é um CLASSIFICADOR ESPECIALISTA de vídeos educacionais de tecnologia.

Você receberá APENAS uma SINOPSE TÉCNICA PURIFICADA — um texto curto, objetivo e 100%% limpo de ruído, descrevendo o conteúdo real do vídeo.

==================================================
OBJETIVO
==================================================
Classificar o vídeo no TÓPICO MAIS ADEQUADO da trilha fornecida.

==================================================
REGRAS ABSOLUTAS (SIGA À RISCA)
==================================================
1. Classifique somente com base na sinopse.
2. Não invente tópicos.
3. A sinopse já removeu tudo que é ruído — confie nela.
4. Se dois tópicos forem possíveis, escolha sempre o mais específico.
5. Classificar quando a sinopse descreve exatamente o que o tópico aborda.
6. Classificar quando há palavras-chave técnicas explícitas compatíveis.
7. Quando a sinopse descrever uma ação, prática ou explicação que se encaixa de forma natural em um tópico (mesmo sem match literal), você DEVE classificar.
8. Só retorne "%s" quando NÃO houver relação técnica plausível com NENHUM dos tópicos.

==================================================
DADOS DO VÍDEO
==================================================
Sinopse Técnica: %s

==================================================
TÓPICOS DISPONÍVEIS PARA "%s":
%s

==================================================
LEMBRETE FINAL:
- Você NÃO PODE criar novos tópicos.
- Se não houver correspondência clara, responda "%s".
- Se a sinopse for genérica demais (ex.: motivacional, opinião, apresentação, dicas vagas), classifique como "%s".

RESPONDA APENAS COM:
- O nome EXATO de um tópico da lista acima
- "%s"

Sem explicações. Sem JSON.`

// SynopsisPrompt builds the contextualization instruction for one record.
func SynopsisPrompt(video domain.VideoRecord) string {
	description := video.Description
	if description == "" {
		description = noDescriptionPlaceholder
	}
	return fmt.Sprintf(synopsisPromptFmt, NonTechnicalSentinel, video.Title, description, video.ChannelName)
}

// ToolPrompt builds the tool-classification instruction from the purified
// synopsis. Title and description are deliberately withheld.
func ToolPrompt(synopsis string) string {
	return fmt.Sprintf(toolPromptFmt, acceptedTools, synopsis, InvalidSentinel, InvalidSentinel)
}

// TopicPrompt builds the trail-topic instruction from the synopsis, the
// resolved tool name, and the exact topic list of its trail.
func TopicPrompt(synopsis, tool string, topics []string) string {
	var sb strings.Builder
	for _, t := range topics {
		fmt.Fprintf(&sb, "- %s\n", t)
	}
	return fmt.Sprintf(topicPromptFmt,
		InvalidSentinel, synopsis, tool, strings.TrimRight(sb.String(), "\n"),
		InvalidSentinel, InvalidSentinel, InvalidSentinel)
}
