package nfe

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lojamae/backend/internal/domain/procurement"
	"github.com/lojamae/backend/internal/domain/shared"
)

// dhEmi carries a timezone offset in layout 4.00; dEmi is the date-only
// field from older layouts.
const (
	layoutDataEmissao       = "2006-01-02T15:04:05-07:00"
	layoutDataEmissaoAntigo = "2006-01-02"
)

// Parser extracts an NFe aggregate from the XML de distribuição
// (nfeProc or bare NFe root, layout 4.00)
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads the invoice XML and builds the NFe aggregate, including
// product lines and declared duplicatas. The raw XML is kept on the
// aggregate for auditing.
func (p *Parser) Parse(xmlData []byte, importadaPor uuid.UUID) (*procurement.NFe, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlData); err != nil {
		return nil, shared.NewDomainError("INVALID_NFE_XML", "Could not parse NFe XML: "+err.Error())
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, shared.NewDomainError("INVALID_NFE_XML", "Missing infNFe element")
	}

	chave := strings.TrimPrefix(infNFe.SelectAttrValue("Id", ""), "NFe")

	ide := infNFe.SelectElement("ide")
	if ide == nil {
		return nil, shared.NewDomainError("INVALID_NFE_XML", "Missing ide element")
	}
	numero := childText(ide, "nNF")
	serie := childText(ide, "serie")

	dataEmissao, err := parseDataEmissao(ide)
	if err != nil {
		return nil, err
	}

	emit := infNFe.SelectElement("emit")
	if emit == nil {
		return nil, shared.NewDomainError("INVALID_NFE_XML", "Missing emit element")
	}
	emitenteCNPJ := childText(emit, "CNPJ")
	emitenteNome := childText(emit, "xNome")

	valorTotal, err := parseValorTotal(infNFe)
	if err != nil {
		return nil, err
	}

	invoice, err := procurement.NewNFe(chave, numero, serie, emitenteCNPJ, emitenteNome,
		dataEmissao, valorTotal, importadaPor)
	if err != nil {
		return nil, err
	}
	invoice.XMLOriginal = string(xmlData)

	for _, det := range infNFe.SelectElements("det") {
		prod := det.SelectElement("prod")
		if prod == nil {
			continue
		}
		quantidade, err := parseDecimal(prod, "qCom")
		if err != nil {
			return nil, err
		}
		valorUnitario, err := parseDecimal(prod, "vUnCom")
		if err != nil {
			return nil, err
		}
		valorProduto, err := parseDecimal(prod, "vProd")
		if err != nil {
			return nil, err
		}
		invoice.AddProduto(
			childText(prod, "cProd"),
			childText(prod, "xProd"),
			childText(prod, "NCM"),
			childText(prod, "uCom"),
			quantidade, valorUnitario, valorProduto,
		)
	}

	if cobr := infNFe.SelectElement("cobr"); cobr != nil {
		for _, dup := range cobr.SelectElements("dup") {
			vencimento, err := time.Parse(layoutDataEmissaoAntigo, childText(dup, "dVenc"))
			if err != nil {
				return nil, shared.NewDomainError("INVALID_NFE_XML",
					"Invalid dVenc on duplicata "+childText(dup, "nDup"))
			}
			valor, err := parseDecimal(dup, "vDup")
			if err != nil {
				return nil, err
			}
			invoice.AddDuplicata(childText(dup, "nDup"), vencimento, valor)
		}
	}

	return invoice, nil
}

func parseDataEmissao(ide *etree.Element) (time.Time, error) {
	if dhEmi := childText(ide, "dhEmi"); dhEmi != "" {
		dataEmissao, err := time.Parse(layoutDataEmissao, dhEmi)
		if err != nil {
			return time.Time{}, shared.NewDomainError("INVALID_NFE_XML", "Invalid dhEmi: "+dhEmi)
		}
		return dataEmissao, nil
	}
	if dEmi := childText(ide, "dEmi"); dEmi != "" {
		dataEmissao, err := time.Parse(layoutDataEmissaoAntigo, dEmi)
		if err != nil {
			return time.Time{}, shared.NewDomainError("INVALID_NFE_XML", "Invalid dEmi: "+dEmi)
		}
		return dataEmissao, nil
	}
	return time.Time{}, shared.NewDomainError("INVALID_NFE_XML", "Missing emission date")
}

func parseValorTotal(infNFe *etree.Element) (decimal.Decimal, error) {
	vNF := infNFe.FindElement("total/ICMSTot/vNF")
	if vNF == nil {
		return decimal.Zero, shared.NewDomainError("INVALID_NFE_XML", "Missing total vNF")
	}
	valor, err := decimal.NewFromString(strings.TrimSpace(vNF.Text()))
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_NFE_XML", "Invalid vNF: "+vNF.Text())
	}
	return valor, nil
}

func parseDecimal(parent *etree.Element, tag string) (decimal.Decimal, error) {
	raw := childText(parent, tag)
	if raw == "" {
		return decimal.Zero, shared.NewDomainError("INVALID_NFE_XML", "Missing "+tag)
	}
	valor, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_NFE_XML", "Invalid "+tag+": "+raw)
	}
	return valor, nil
}

func childText(parent *etree.Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}
