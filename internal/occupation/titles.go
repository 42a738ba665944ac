package occupation

import (
	"fmt"
	"sort"
)

// Reference is one entry of the reference occupation list.
type Reference struct {
	Code  string
	Title string
}

// standardTitles holds the SOC 2018 title for every code the alias table can produce.
var standardTitles = map[string]string{
	"11-1011": "Chief Executives",
	"11-1021": "General and Operations Managers",
	"11-2011": "Advertising and Promotions Managers",
	"11-2021": "Marketing Managers",
	"11-2022": "Sales Managers",
	"11-2032": "Public Relations Managers",
	"11-3012": "Administrative Services Managers",
	"11-3021": "Computer and Information Systems Managers",
	"11-3031": "Financial Managers",
	"11-3051": "Industrial Production Managers",
	"11-3061": "Purchasing Managers",
	"11-3071": "Transportation, Storage, and Distribution Managers",
	"11-3111": "Compensation and Benefits Managers",
	"11-3121": "Human Resources Managers",
	"11-3131": "Training and Development Managers",
	"11-9013": "Farmers, Ranchers, and Other Agricultural Managers",
	"11-9021": "Construction Managers",
	"11-9032": "Education Administrators, Kindergarten through Secondary",
	"11-9041": "Architectural and Engineering Managers",
	"11-9051": "Food Service Managers",
	"11-9081": "Lodging Managers",
	"11-9111": "Medical and Health Services Managers",
	"11-9121": "Natural Sciences Managers",
	"11-9141": "Property, Real Estate, and Community Association Managers",
	"11-9151": "Social and Community Service Managers",
	"11-9161": "Emergency Management Directors",
	"13-1023": "Purchasing Agents, Except Wholesale, Retail, and Farm Products",
	"13-1031": "Claims Adjusters, Examiners, and Investigators",
	"13-1041": "Compliance Officers",
	"13-1051": "Cost Estimators",
	"13-1071": "Human Resources Specialists",
	"13-1081": "Logisticians",
	"13-1082": "Project Management Specialists",
	"13-1111": "Management Analysts",
	"13-1121": "Meeting, Convention, and Event Planners",
	"13-1131": "Fundraisers",
	"13-1141": "Compensation, Benefits, and Job Analysis Specialists",
	"13-1151": "Training and Development Specialists",
	"13-1161": "Market Research Analysts and Marketing Specialists",
	"13-2011": "Accountants and Auditors",
	"13-2023": "Appraisers and Assessors of Real Estate",
	"13-2031": "Budget Analysts",
	"13-2041": "Credit Analysts",
	"13-2051": "Financial and Investment Analysts",
	"13-2052": "Personal Financial Advisors",
	"13-2053": "Insurance Underwriters",
	"13-2061": "Financial Examiners",
	"13-2072": "Loan Officers",
	"13-2081": "Tax Examiners and Collectors, and Revenue Agents",
	"13-2082": "Tax Preparers",
	"15-1211": "Computer Systems Analysts",
	"15-1212": "Information Security Analysts",
	"15-1221": "Computer and Information Research Scientists",
	"15-1231": "Computer Network Support Specialists",
	"15-1232": "Computer User Support Specialists",
	"15-1241": "Computer Network Architects",
	"15-1242": "Database Administrators",
	"15-1243": "Database Architects",
	"15-1244": "Network and Computer Systems Administrators",
	"15-1251": "Computer Programmers",
	"15-1252": "Software Developers",
	"15-1253": "Software Quality Assurance Analysts and Testers",
	"15-1254": "Web Developers",
	"15-1255": "Web and Digital Interface Designers",
	"15-1299": "Computer Occupations, All Other",
	"15-2011": "Actuaries",
	"15-2021": "Mathematicians",
	"15-2031": "Operations Research Analysts",
	"15-2041": "Statisticians",
	"15-2051": "Data Scientists",
	"17-1011": "Architects, Except Landscape and Naval",
	"17-1012": "Landscape Architects",
	"17-1021": "Cartographers and Photogrammetrists",
	"17-1022": "Surveyors",
	"17-2011": "Aerospace Engineers",
	"17-2031": "Bioengineers and Biomedical Engineers",
	"17-2041": "Chemical Engineers",
	"17-2051": "Civil Engineers",
	"17-2061": "Computer Hardware Engineers",
	"17-2071": "Electrical Engineers",
	"17-2072": "Electronics Engineers, Except Computer",
	"17-2081": "Environmental Engineers",
	"17-2111": "Health and Safety Engineers, Except Mining Safety Engineers and Inspectors",
	"17-2112": "Industrial Engineers",
	"17-2121": "Marine Engineers and Naval Architects",
	"17-2131": "Materials Engineers",
	"17-2141": "Mechanical Engineers",
	"17-2151": "Mining and Geological Engineers, Including Mining Safety Engineers",
	"17-2161": "Nuclear Engineers",
	"17-2171": "Petroleum Engineers",
	"17-3011": "Architectural and Civil Drafters",
	"19-1012": "Food Scientists and Technologists",
	"19-1022": "Microbiologists",
	"19-1029": "Biological Scientists, All Other",
	"19-1041": "Epidemiologists",
	"19-1042": "Medical Scientists, Except Epidemiologists",
	"19-2011": "Astronomers",
	"19-2012": "Physicists",
	"19-2031": "Chemists",
	"19-2041": "Environmental Scientists and Specialists, Including Health",
	"19-2042": "Geoscientists, Except Hydrologists and Geographers",
	"19-3011": "Economists",
	"19-3022": "Survey Researchers",
	"19-3033": "Clinical and Counseling Psychologists",
	"19-3041": "Sociologists",
	"19-3051": "Urban and Regional Planners",
	"19-3091": "Anthropologists and Archeologists",
	"19-3093": "Historians",
	"19-3094": "Political Scientists",
	"19-4021": "Biological Technicians",
	"19-4031": "Chemical Technicians",
	"21-1011": "Substance Abuse and Behavioral Disorder Counselors",
	"21-1012": "Educational, Guidance, and Career Counselors and Advisors",
	"21-1013": "Marriage and Family Therapists",
	"21-1014": "Mental Health Counselors",
	"21-1015": "Rehabilitation Counselors",
	"21-1021": "Child, Family, and School Social Workers",
	"21-1091": "Health Education Specialists",
	"21-1092": "Probation Officers and Correctional Treatment Specialists",
	"21-1094": "Community Health Workers",
	"21-2011": "Clergy",
	"23-1011": "Lawyers",
	"23-1022": "Arbitrators, Mediators, and Conciliators",
	"23-1023": "Judges, Magistrate Judges, and Magistrates",
	"23-2011": "Paralegals and Legal Assistants",
	"23-2093": "Title Examiners, Abstractors, and Searchers",
	"25-1099": "Postsecondary Teachers",
	"25-2011": "Preschool Teachers, Except Special Education",
	"25-2012": "Kindergarten Teachers, Except Special Education",
	"25-2021": "Elementary School Teachers, Except Special Education",
	"25-2022": "Middle School Teachers, Except Special and Career/Technical Education",
	"25-2031": "Secondary School Teachers, Except Special and Career/Technical Education",
	"25-2052": "Special Education Teachers, Kindergarten and Elementary School",
	"25-3031": "Substitute Teachers, Short-Term",
	"25-3041": "Tutors",
	"25-4022": "Librarians and Media Collections Specialists",
	"25-4031": "Library Technicians",
	"25-9031": "Instructional Coordinators",
	"25-9042": "Teaching Assistants, Preschool, Elementary, Middle, and Secondary School, Except Special Education",
	"27-1011": "Art Directors",
	"27-1014": "Special Effects Artists and Animators",
	"27-1021": "Commercial and Industrial Designers",
	"27-1022": "Fashion Designers",
	"27-1024": "Graphic Designers",
	"27-1025": "Interior Designers",
	"27-2011": "Actors",
	"27-2012": "Producers and Directors",
	"27-2021": "Athletes and Sports Competitors",
	"27-2022": "Coaches and Scouts",
	"27-2042": "Musicians and Singers",
	"27-3011": "Broadcast Announcers and Radio Disc Jockeys",
	"27-3023": "News Analysts, Reporters, and Journalists",
	"27-3031": "Public Relations Specialists",
	"27-3041": "Editors",
	"27-3042": "Technical Writers",
	"27-3043": "Writers and Authors",
	"27-3091": "Interpreters and Translators",
	"27-3092": "Court Reporters and Simultaneous Captioners",
	"27-4014": "Sound Engineering Technicians",
	"27-4021": "Photographers",
	"27-4031": "Camera Operators, Television, Video, and Film",
	"27-4032": "Film and Video Editors",
	"29-1011": "Chiropractors",
	"29-1021": "Dentists, General",
	"29-1031": "Dietitians and Nutritionists",
	"29-1041": "Optometrists",
	"29-1051": "Pharmacists",
	"29-1071": "Physician Assistants",
	"29-1122": "Occupational Therapists",
	"29-1123": "Physical Therapists",
	"29-1126": "Respiratory Therapists",
	"29-1127": "Speech-Language Pathologists",
	"29-1131": "Veterinarians",
	"29-1141": "Registered Nurses",
	"29-1171": "Nurse Practitioners",
	"29-1181": "Audiologists",
	"29-1211": "Anesthesiologists",
	"29-1215": "Family Medicine Physicians",
	"29-1221": "Pediatricians, General",
	"29-1223": "Psychiatrists",
	"29-1224": "Radiologists",
	"29-1229": "Physicians, All Other",
	"29-1249": "Surgeons, All Other",
	"29-1292": "Dental Hygienists",
	"29-2011": "Clinical Laboratory Technologists and Technicians",
	"29-2032": "Diagnostic Medical Sonographers",
	"29-2034": "Radiologic Technologists and Technicians",
	"29-2042": "Emergency Medical Technicians",
	"29-2043": "Paramedics",
	"29-2052": "Pharmacy Technicians",
	"29-2055": "Surgical Technologists",
	"29-2061": "Licensed Practical and Licensed Vocational Nurses",
	"29-2072": "Medical Records Specialists",
	"29-2081": "Opticians, Dispensing",
	"29-9091": "Athletic Trainers",
	"31-1121": "Home Health Aides",
	"31-1122": "Personal Care Aides",
	"31-1131": "Nursing Assistants",
	"31-1133": "Psychiatric Aides",
	"31-2011": "Occupational Therapy Assistants",
	"31-2021": "Physical Therapist Assistants",
	"31-9011": "Massage Therapists",
	"31-9091": "Dental Assistants",
	"31-9092": "Medical Assistants",
	"31-9094": "Medical Transcriptionists",
	"31-9095": "Pharmacy Aides",
	"31-9096": "Veterinary Assistants and Laboratory Animal Caretakers",
	"31-9097": "Phlebotomists",
	"33-2011": "Firefighters",
	"33-2021": "Fire Inspectors and Investigators",
	"33-3012": "Correctional Officers and Jailers",
	"33-3021": "Detectives and Criminal Investigators",
	"33-3051": "Police and Sheriff's Patrol Officers",
	"33-9021": "Private Detectives and Investigators",
	"33-9032": "Security Guards",
	"33-9091": "Crossing Guards and Flaggers",
	"33-9092": "Lifeguards, Ski Patrol, and Other Recreational Protective Service Workers",
	"33-9093": "Transportation Security Screeners",
	"35-1011": "Chefs and Head Cooks",
	"35-1012": "First-Line Supervisors of Food Preparation and Serving Workers",
	"35-2011": "Cooks, Fast Food",
	"35-2014": "Cooks, Restaurant",
	"35-2021": "Food Preparation Workers",
	"35-3011": "Bartenders",
	"35-3023": "Fast Food and Counter Workers",
	"35-3031": "Waiters and Waitresses",
	"35-9021": "Dishwashers",
	"35-9031": "Hosts and Hostesses, Restaurant, Lounge, and Coffee Shop",
	"37-2011": "Janitors and Cleaners, Except Maids and Housekeeping Cleaners",
	"37-2012": "Maids and Housekeeping Cleaners",
	"37-2021": "Pest Control Workers",
	"37-3011": "Landscaping and Groundskeeping Workers",
	"37-3013": "Tree Trimmers and Pruners",
	"39-2021": "Animal Caretakers",
	"39-5011": "Barbers",
	"39-5012": "Hairdressers, Hairstylists, and Cosmetologists",
	"39-5092": "Manicurists and Pedicurists",
	"39-5094": "Skincare Specialists",
	"39-6012": "Concierges",
	"39-7011": "Tour and Travel Guides",
	"39-9011": "Childcare Workers",
	"39-9031": "Exercise Trainers and Group Fitness Instructors",
	"39-9032": "Recreation Workers",
	"41-1011": "First-Line Supervisors of Retail Sales Workers",
	"41-2011": "Cashiers",
	"41-2021": "Counter and Rental Clerks",
	"41-2022": "Parts Salespersons",
	"41-2031": "Retail Salespersons",
	"41-3011": "Advertising Sales Agents",
	"41-3021": "Insurance Sales Agents",
	"41-3031": "Securities, Commodities, and Financial Services Sales Agents",
	"41-3041": "Travel Agents",
	"41-4012": "Sales Representatives, Wholesale and Manufacturing, Except Technical and Scientific Products",
	"41-9011": "Demonstrators and Product Promoters",
	"41-9012": "Models",
	"41-9021": "Real Estate Brokers",
	"41-9022": "Real Estate Sales Agents",
	"41-9031": "Sales Engineers",
	"41-9041": "Telemarketers",
	"41-9091": "Door-to-Door Sales Workers, News and Street Vendors, and Related Workers",
	"43-1011": "First-Line Supervisors of Office and Administrative Support Workers",
	"43-2011": "Switchboard Operators, Including Answering Service",
	"43-2021": "Telephone Operators",
	"43-3011": "Bill and Account Collectors",
	"43-3021": "Billing and Posting Clerks",
	"43-3031": "Bookkeeping, Accounting, and Auditing Clerks",
	"43-3051": "Payroll and Timekeeping Clerks",
	"43-3061": "Procurement Clerks",
	"43-3071": "Tellers",
	"43-4031": "Court, Municipal, and License Clerks",
	"43-4051": "Customer Service Representatives",
	"43-4071": "File Clerks",
	"43-4081": "Hotel, Motel, and Resort Desk Clerks",
	"43-4121": "Library Assistants, Clerical",
	"43-4131": "Loan Interviewers and Clerks",
	"43-4161": "Human Resources Assistants, Except Payroll and Timekeeping",
	"43-4171": "Receptionists and Information Clerks",
	"43-5031": "Public Safety Telecommunicators",
	"43-5032": "Dispatchers, Except Police, Fire, and Ambulance",
	"43-5051": "Postal Service Clerks",
	"43-5052": "Postal Service Mail Carriers",
	"43-5061": "Production, Planning, and Expediting Clerks",
	"43-5071": "Shipping, Receiving, and Inventory Clerks",
	"43-6011": "Executive Secretaries and Executive Administrative Assistants",
	"43-6012": "Legal Secretaries and Administrative Assistants",
	"43-6013": "Medical Secretaries and Administrative Assistants",
	"43-6014": "Secretaries and Administrative Assistants, Except Legal, Medical, and Executive",
	"43-9021": "Data Entry Keyers",
	"43-9022": "Word Processors and Typists",
	"43-9041": "Insurance Claims and Policy Processing Clerks",
	"43-9061": "Office Clerks, General",
	"43-9081": "Proofreaders and Copy Markers",
	"45-2011": "Agricultural Inspectors",
	"45-2092": "Farmworkers and Laborers, Crop, Nursery, and Greenhouse",
	"45-3031": "Fishing and Hunting Workers",
	"45-4022": "Logging Equipment Operators",
	"47-1011": "First-Line Supervisors of Construction Trades and Extraction Workers",
	"47-2021": "Brickmasons and Blockmasons",
	"47-2031": "Carpenters",
	"47-2044": "Tile and Stone Setters",
	"47-2061": "Construction Laborers",
	"47-2073": "Operating Engineers and Other Construction Equipment Operators",
	"47-2081": "Drywall and Ceiling Tile Installers",
	"47-2111": "Electricians",
	"47-2121": "Glaziers",
	"47-2141": "Painters, Construction and Maintenance",
	"47-2152": "Plumbers, Pipefitters, and Steamfitters",
	"47-2181": "Roofers",
	"47-2221": "Structural Iron and Steel Workers",
	"47-2231": "Solar Photovoltaic Installers",
	"47-4011": "Construction and Building Inspectors",
	"47-4021": "Elevator and Escalator Installers and Repairers",
	"49-2011": "Computer, Automated Teller, and Office Machine Repairers",
	"49-2022": "Telecommunications Equipment Installers and Repairers, Except Line Installers",
	"49-3011": "Aircraft Mechanics and Service Technicians",
	"49-3023": "Automotive Service Technicians and Mechanics",
	"49-3031": "Bus and Truck Mechanics and Diesel Engine Specialists",
	"49-3052": "Motorcycle Mechanics",
	"49-3053": "Outdoor Power Equipment and Other Small Engine Mechanics",
	"49-3091": "Bicycle Repairers",
	"49-9021": "Heating, Air Conditioning, and Refrigeration Mechanics and Installers",
	"49-9031": "Home Appliance Repairers",
	"49-9041": "Industrial Machinery Mechanics",
	"49-9051": "Electrical Power-Line Installers and Repairers",
	"49-9071": "Maintenance and Repair Workers, General",
	"49-9081": "Wind Turbine Service Technicians",
	"49-9094": "Locksmiths and Safe Repairers",
	"51-1011": "First-Line Supervisors of Production and Operating Workers",
	"51-2092": "Team Assemblers",
	"51-3011": "Bakers",
	"51-3021": "Butchers and Meat Cutters",
	"51-3023": "Slaughterers and Meat Packers",
	"51-4041": "Machinists",
	"51-4121": "Welders, Cutters, Solderers, and Brazers",
	"51-5112": "Printing Press Operators",
	"51-6011": "Laundry and Dry-Cleaning Workers",
	"51-6031": "Sewing Machine Operators",
	"51-6052": "Tailors, Dressmakers, and Custom Sewers",
	"51-7011": "Cabinetmakers and Bench Carpenters",
	"51-8013": "Power Plant Operators",
	"51-8031": "Water and Wastewater Treatment Plant and System Operators",
	"51-8091": "Chemical Plant and System Operators",
	"51-9061": "Inspectors, Testers, Sorters, Samplers, and Weighers",
	"51-9071": "Jewelers and Precious Stone and Metal Workers",
	"51-9081": "Dental Laboratory Technicians",
	"51-9111": "Packaging and Filling Machine Operators and Tenders",
	"51-9161": "Computer Numerically Controlled Tool Operators",
	"53-2011": "Airline Pilots, Copilots, and Flight Engineers",
	"53-2012": "Commercial Pilots",
	"53-2021": "Air Traffic Controllers",
	"53-2031": "Flight Attendants",
	"53-3031": "Driver/Sales Workers",
	"53-3032": "Heavy and Tractor-Trailer Truck Drivers",
	"53-3033": "Light Truck Drivers",
	"53-3051": "Bus Drivers, School",
	"53-3052": "Bus Drivers, Transit and Intercity",
	"53-3053": "Shuttle Drivers and Chauffeurs",
	"53-3054": "Taxi Drivers",
	"53-4011": "Locomotive Engineers",
	"53-4031": "Railroad Conductors and Yardmasters",
	"53-5011": "Sailors and Marine Oilers",
	"53-5021": "Captains, Mates, and Pilots of Water Vessels",
	"53-6021": "Parking Attendants",
	"53-7021": "Crane and Tower Operators",
	"53-7051": "Industrial Truck and Tractor Operators",
	"53-7062": "Laborers and Freight, Stock, and Material Movers, Hand",
	"53-7064": "Packers and Packagers, Hand",
	"53-7065": "Stockers and Order Fillers",
	"55-1019": "Military Officer Special and Tactical Operations Leaders, All Other",
	"55-3019": "Military Enlisted Tactical Operations and Air/Weapons Specialists and Crew Members, All Other",
}

// titleAliases maps collapsed job-title spellings to SOC codes.
var titleAliases = map[string]string{
	// management
	"chief executive":                     "11-1011",
	"chief executive officer":             "11-1011",
	"ceo":                                 "11-1011",
	"general manager":                     "11-1021",
	"operations manager":                  "11-1021",
	"manager":                             "11-1021",
	"advertising manager":                 "11-2011",
	"promotions manager":                  "11-2011",
	"marketing manager":                   "11-2021",
	"product manager":                     "11-2021",
	"brand manager":                       "11-2021",
	"sales manager":                       "11-2022",
	"public relations manager":            "11-2032",
	"administrative services manager":     "11-3012",
	"facilities manager":                  "11-3012",
	"it manager":                          "11-3021",
	"information technology manager":      "11-3021",
	"engineering manager":                 "11-9041",
	"software engineering manager":        "11-9041",
	"cto":                                 "11-3021",
	"chief technology officer":            "11-3021",
	"financial manager":                   "11-3031",
	"finance manager":                     "11-3031",
	"controller":                          "11-3031",
	"treasurer":                           "11-3031",
	"cfo":                                 "11-3031",
	"production manager":                  "11-3051",
	"plant manager":                       "11-3051",
	"purchasing manager":                  "11-3061",
	"logistics manager":                   "11-3071",
	"supply chain manager":                "11-3071",
	"warehouse manager":                   "11-3071",
	"compensation and benefits manager":   "11-3111",
	"human resources manager":             "11-3121",
	"hr manager":                          "11-3121",
	"training manager":                    "11-3131",
	"farmer":                              "11-9013",
	"rancher":                             "11-9013",
	"construction manager":                "11-9021",
	"school principal":                    "11-9032",
	"principal":                           "11-9032",
	"restaurant manager":                  "11-9051",
	"food service manager":                "11-9051",
	"hotel manager":                       "11-9081",
	"healthcare administrator":            "11-9111",
	"hospital administrator":              "11-9111",
	"medical and health services manager": "11-9111",
	"natural sciences manager":            "11-9121",
	"property manager":                    "11-9141",
	"social services manager":             "11-9151",
	"emergency management director":       "11-9161",

	// business and financial
	"buyer":                         "13-1023",
	"purchasing agent":              "13-1023",
	"claims adjuster":               "13-1031",
	"insurance adjuster":            "13-1031",
	"compliance officer":            "13-1041",
	"cost estimator":                "13-1051",
	"human resources specialist":    "13-1071",
	"hr specialist":                 "13-1071",
	"recruiter":                     "13-1071",
	"talent acquisition specialist": "13-1071",
	"logistician":                   "13-1081",
	"project manager":               "13-1082",
	"program manager":               "13-1082",
	"scrum master":                  "13-1082",
	"management analyst":            "13-1111",
	"management consultant":         "13-1111",
	"consultant":                    "13-1111",
	"business analyst":              "13-1111",
	"event planner":                 "13-1121",
	"meeting planner":               "13-1121",
	"wedding planner":               "13-1121",
	"fundraiser":                    "13-1131",
	"compensation analyst":          "13-1141",
	"benefits analyst":              "13-1141",
	"training specialist":           "13-1151",
	"corporate trainer":             "13-1151",
	"market research analyst":       "13-1161",
	"marketing analyst":             "13-1161",
	"marketing specialist":          "13-1161",
	"seo specialist":                "13-1161",
	"accountant":                    "13-2011",
	"auditor":                       "13-2011",
	"cpa":                           "13-2011",
	"certified public accountant":   "13-2011",
	"real estate appraiser":         "13-2023",
	"appraiser":                     "13-2023",
	"budget analyst":                "13-2031",
	"credit analyst":                "13-2041",
	"financial analyst":             "13-2051",
	"investment analyst":            "13-2051",
	"financial advisor":             "13-2052",
	"financial planner":             "13-2052",
	"insurance underwriter":         "13-2053",
	"underwriter":                   "13-2053",
	"financial examiner":            "13-2061",
	"loan officer":                  "13-2072",
	"mortgage loan officer":         "13-2072",
	"tax examiner":                  "13-2081",
	"revenue agent":                 "13-2081",
	"tax preparer":                  "13-2082",

	// computer and mathematical
	"computer systems analyst":         "15-1211",
	"systems analyst":                  "15-1211",
	"business systems analyst":         "15-1211",
	"information security analyst":     "15-1212",
	"cybersecurity analyst":            "15-1212",
	"security analyst":                 "15-1212",
	"penetration tester":               "15-1212",
	"computer research scientist":      "15-1221",
	"research scientist":               "15-1221",
	"machine learning engineer":        "15-1221",
	"ai engineer":                      "15-1221",
	"ai researcher":                    "15-1221",
	"network support specialist":       "15-1231",
	"help desk technician":             "15-1232",
	"help desk":                        "15-1232",
	"it support specialist":            "15-1232",
	"it support":                       "15-1232",
	"technical support specialist":     "15-1232",
	"desktop support":                  "15-1232",
	"computer user support specialist": "15-1232",
	"network architect":                "15-1241",
	"network engineer":                 "15-1241",
	"cloud architect":                  "15-1241",
	"database administrator":           "15-1242",
	"dba":                              "15-1242",
	"database architect":               "15-1243",
	"data architect":                   "15-1243",
	"network administrator":            "15-1244",
	"system administrator":             "15-1244",
	"systems administrator":            "15-1244",
	"sysadmin":                         "15-1244",
	"computer programmer":              "15-1251",
	"programmer":                       "15-1251",
	"coder":                            "15-1251",
	"software developer":               "15-1252",
	"software engineer":                "15-1252",
	"software architect":               "15-1252",
	"backend developer":                "15-1252",
	"backend engineer":                 "15-1252",
	"full stack developer":             "15-1252",
	"fullstack developer":              "15-1252",
	"full stack engineer":              "15-1252",
	"mobile developer":                 "15-1252",
	"ios developer":                    "15-1252",
	"android developer":                "15-1252",
	"application developer":            "15-1252",
	"game developer":                   "15-1252",
	"golang developer":                 "15-1252",
	"java developer":                   "15-1252",
	"python developer":                 "15-1252",
	"qa engineer":                      "15-1253",
	"qa analyst":                       "15-1253",
	"quality assurance analyst":        "15-1253",
	"software tester":                  "15-1253",
	"test engineer":                    "15-1253",
	"web developer":                    "15-1254",
	"frontend developer":               "15-1254",
	"front end developer":              "15-1254",
	"frontend engineer":                "15-1254",
	"web designer":                     "15-1255",
	"ui designer":                      "15-1255",
	"ux designer":                      "15-1255",
	"ui ux designer":                   "15-1255",
	"user experience designer":         "15-1255",
	"devops engineer":                  "15-1299",
	"site reliability engineer":        "15-1299",
	"sre":                              "15-1299",
	"blockchain developer":             "15-1299",
	"actuary":                          "15-2011",
	"mathematician":                    "15-2021",
	"operations research analyst":      "15-2031",
	"statistician":                     "15-2041",
	"data scientist":                   "15-2051",
	"data analyst":                     "15-2051",
	"data engineer":                    "15-2051",
	"business intelligence analyst":    "15-2051",

	// architecture and engineering
	"architect":                  "17-1011",
	"landscape architect":        "17-1012",
	"cartographer":               "17-1021",
	"surveyor":                   "17-1022",
	"land surveyor":              "17-1022",
	"aerospace engineer":         "17-2011",
	"biomedical engineer":        "17-2031",
	"chemical engineer":          "17-2041",
	"civil engineer":             "17-2051",
	"structural engineer":        "17-2051",
	"hardware engineer":          "17-2061",
	"computer hardware engineer": "17-2061",
	"electrical engineer":        "17-2071",
	"electronics engineer":       "17-2072",
	"environmental engineer":     "17-2081",
	"safety engineer":            "17-2111",
	"industrial engineer":        "17-2112",
	"marine engineer":            "17-2121",
	"naval architect":            "17-2121",
	"materials engineer":         "17-2131",
	"mechanical engineer":        "17-2141",
	"mining engineer":            "17-2151",
	"nuclear engineer":           "17-2161",
	"petroleum engineer":         "17-2171",
	"drafter":                    "17-3011",
	"cad drafter":                "17-3011",

	// science
	"food scientist":          "19-1012",
	"microbiologist":          "19-1022",
	"biologist":               "19-1029",
	"epidemiologist":          "19-1041",
	"medical scientist":       "19-1042",
	"astronomer":              "19-2011",
	"physicist":               "19-2012",
	"chemist":                 "19-2031",
	"environmental scientist": "19-2041",
	"geologist":               "19-2042",
	"geoscientist":            "19-2042",
	"economist":               "19-3011",
	"survey researcher":       "19-3022",
	"psychologist":            "19-3033",
	"clinical psychologist":   "19-3033",
	"sociologist":             "19-3041",
	"urban planner":           "19-3051",
	"city planner":            "19-3051",
	"anthropologist":          "19-3091",
	"archaeologist":           "19-3091",
	"historian":               "19-3093",
	"political scientist":     "19-3094",
	"lab technician":          "19-4021",
	"biological technician":   "19-4021",
	"chemical technician":     "19-4031",

	// community and social service
	"substance abuse counselor":     "21-1011",
	"school counselor":              "21-1012",
	"career counselor":              "21-1012",
	"academic advisor":              "21-1012",
	"marriage and family therapist": "21-1013",
	"therapist":                     "21-1014",
	"mental health counselor":       "21-1014",
	"counselor":                     "21-1014",
	"rehabilitation counselor":      "21-1015",
	"social worker":                 "21-1021",
	"health educator":               "21-1091",
	"probation officer":             "21-1092",
	"community health worker":       "21-1094",
	"clergy":                        "21-2011",
	"pastor":                        "21-2011",
	"priest":                        "21-2011",
	"rabbi":                         "21-2011",

	// legal
	"lawyer":          "23-1011",
	"attorney":        "23-1011",
	"solicitor":       "23-1011",
	"mediator":        "23-1022",
	"arbitrator":      "23-1022",
	"judge":           "23-1023",
	"paralegal":       "23-2011",
	"legal assistant": "23-2011",
	"title examiner":  "23-2093",

	// education
	"professor":                 "25-1099",
	"university professor":      "25-1099",
	"college professor":         "25-1099",
	"lecturer":                  "25-1099",
	"preschool teacher":         "25-2011",
	"kindergarten teacher":      "25-2012",
	"teacher":                   "25-2021",
	"elementary school teacher": "25-2021",
	"primary school teacher":    "25-2021",
	"middle school teacher":     "25-2022",
	"high school teacher":       "25-2031",
	"secondary school teacher":  "25-2031",
	"special education teacher": "25-2052",
	"substitute teacher":        "25-3031",
	"tutor":                     "25-3041",
	"librarian":                 "25-4022",
	"library technician":        "25-4031",
	"instructional coordinator": "25-9031",
	"instructional designer":    "25-9031",
	"teaching assistant":        "25-9042",
	"teacher assistant":         "25-9042",

	// arts, design, media
	"art director":                "27-1011",
	"animator":                    "27-1014",
	"3d artist":                   "27-1014",
	"vfx artist":                  "27-1014",
	"industrial designer":         "27-1021",
	"product designer":            "27-1021",
	"fashion designer":            "27-1022",
	"graphic designer":            "27-1024",
	"illustrator":                 "27-1024",
	"interior designer":           "27-1025",
	"actor":                       "27-2011",
	"actress":                     "27-2011",
	"producer":                    "27-2012",
	"director":                    "27-2012",
	"film director":               "27-2012",
	"athlete":                     "27-2021",
	"coach":                       "27-2022",
	"musician":                    "27-2042",
	"singer":                      "27-2042",
	"radio host":                  "27-3011",
	"announcer":                   "27-3011",
	"dj":                          "27-3011",
	"journalist":                  "27-3023",
	"reporter":                    "27-3023",
	"news reporter":               "27-3023",
	"public relations specialist": "27-3031",
	"pr specialist":               "27-3031",
	"social media manager":        "27-3031",
	"communications specialist":   "27-3031",
	"editor":                      "27-3041",
	"copy editor":                 "27-3041",
	"technical writer":            "27-3042",
	"writer":                      "27-3043",
	"author":                      "27-3043",
	"copywriter":                  "27-3043",
	"content writer":              "27-3043",
	"translator":                  "27-3091",
	"interpreter":                 "27-3091",
	"court reporter":              "27-3092",
	"stenographer":                "27-3092",
	"captioner":                   "27-3092",
	"sound engineer":              "27-4014",
	"audio engineer":              "27-4014",
	"photographer":                "27-4021",
	"camera operator":             "27-4031",
	"cameraman":                   "27-4031",
	"video editor":                "27-4032",
	"film editor":                 "27-4032",

	// healthcare practitioners
	"chiropractor":                     "29-1011",
	"dentist":                          "29-1021",
	"dietitian":                        "29-1031",
	"nutritionist":                     "29-1031",
	"optometrist":                      "29-1041",
	"pharmacist":                       "29-1051",
	"physician assistant":              "29-1071",
	"occupational therapist":           "29-1122",
	"physical therapist":               "29-1123",
	"physiotherapist":                  "29-1123",
	"respiratory therapist":            "29-1126",
	"speech therapist":                 "29-1127",
	"speech language pathologist":      "29-1127",
	"veterinarian":                     "29-1131",
	"vet":                              "29-1131",
	"nurse":                            "29-1141",
	"registered nurse":                 "29-1141",
	"rn":                               "29-1141",
	"nurse practitioner":               "29-1171",
	"audiologist":                      "29-1181",
	"anesthesiologist":                 "29-1211",
	"family physician":                 "29-1215",
	"family doctor":                    "29-1215",
	"general practitioner":             "29-1215",
	"pediatrician":                     "29-1221",
	"psychiatrist":                     "29-1223",
	"radiologist":                      "29-1224",
	"doctor":                           "29-1229",
	"physician":                        "29-1229",
	"surgeon":                          "29-1249",
	"dental hygienist":                 "29-1292",
	"medical laboratory technician":    "29-2011",
	"medical lab technician":           "29-2011",
	"clinical laboratory technologist": "29-2011",
	"sonographer":                      "29-2032",
	"ultrasound technician":            "29-2032",
	"radiologic technologist":          "29-2034",
	"x ray technician":                 "29-2034",
	"emt":                              "29-2042",
	"emergency medical technician":     "29-2042",
	"paramedic":                        "29-2043",
	"pharmacy technician":              "29-2052",
	"surgical technologist":            "29-2055",
	"licensed practical nurse":         "29-2061",
	"lpn":                              "29-2061",
	"lvn":                              "29-2061",
	"medical records technician":       "29-2072",
	"medical records specialist":       "29-2072",
	"health information technician":    "29-2072",
	"medical coder":                    "29-2072",
	"medical biller":                   "29-2072",
	"optician":                         "29-2081",
	"athletic trainer":                 "29-9091",

	// healthcare support
	"home health aide":               "31-1121",
	"caregiver":                      "31-1122",
	"personal care aide":             "31-1122",
	"nursing assistant":              "31-1131",
	"cna":                            "31-1131",
	"certified nursing assistant":    "31-1131",
	"psychiatric aide":               "31-1133",
	"occupational therapy assistant": "31-2011",
	"physical therapist assistant":   "31-2021",
	"massage therapist":              "31-9011",
	"dental assistant":               "31-9091",
	"medical assistant":              "31-9092",
	"medical transcriptionist":       "31-9094",
	"transcriptionist":               "31-9094",
	"pharmacy aide":                  "31-9095",
	"veterinary assistant":           "31-9096",
	"vet tech":                       "31-9096",
	"phlebotomist":                   "31-9097",

	// protective service
	"firefighter":           "33-2011",
	"fire inspector":        "33-2021",
	"correctional officer":  "33-3012",
	"prison guard":          "33-3012",
	"detective":             "33-3021",
	"criminal investigator": "33-3021",
	"police officer":        "33-3051",
	"police":                "33-3051",
	"sheriff":               "33-3051",
	"private investigator":  "33-9021",
	"security guard":        "33-9032",
	"security officer":      "33-9032",
	"crossing guard":        "33-9091",
	"lifeguard":             "33-9092",
	"tsa agent":             "33-9093",
	"security screener":     "33-9093",

	// food service
	"chef":                    "35-1011",
	"head chef":               "35-1011",
	"executive chef":          "35-1011",
	"sous chef":               "35-1011",
	"kitchen manager":         "35-1012",
	"food service supervisor": "35-1012",
	"fast food cook":          "35-2011",
	"cook":                    "35-2014",
	"line cook":               "35-2014",
	"prep cook":               "35-2021",
	"food prep worker":        "35-2021",
	"bartender":               "35-3011",
	"barista":                 "35-3023",
	"fast food worker":        "35-3023",
	"counter attendant":       "35-3023",
	"waiter":                  "35-3031",
	"waitress":                "35-3031",
	"server":                  "35-3031",
	"dishwasher":              "35-9021",
	"host":                    "35-9031",
	"hostess":                 "35-9031",

	// building and grounds
	"janitor":                 "37-2011",
	"custodian":               "37-2011",
	"cleaner":                 "37-2011",
	"maid":                    "37-2012",
	"housekeeper":             "37-2012",
	"exterminator":            "37-2021",
	"pest control technician": "37-2021",
	"landscaper":              "37-3011",
	"groundskeeper":           "37-3011",
	"gardener":                "37-3011",
	"tree trimmer":            "37-3013",
	"arborist":                "37-3013",

	// personal care
	"animal caretaker":   "39-2021",
	"dog groomer":        "39-2021",
	"barber":             "39-5011",
	"hairdresser":        "39-5012",
	"hair stylist":       "39-5012",
	"hairstylist":        "39-5012",
	"cosmetologist":      "39-5012",
	"manicurist":         "39-5092",
	"nail technician":    "39-5092",
	"esthetician":        "39-5094",
	"concierge":          "39-6012",
	"tour guide":         "39-7011",
	"childcare worker":   "39-9011",
	"nanny":              "39-9011",
	"babysitter":         "39-9011",
	"personal trainer":   "39-9031",
	"fitness instructor": "39-9031",
	"yoga instructor":    "39-9031",
	"recreation worker":  "39-9032",

	// sales
	"store manager":           "41-1011",
	"retail manager":          "41-1011",
	"cashier":                 "41-2011",
	"rental clerk":            "41-2021",
	"counter clerk":           "41-2021",
	"parts salesperson":       "41-2022",
	"retail salesperson":      "41-2031",
	"sales associate":         "41-2031",
	"retail associate":        "41-2031",
	"advertising sales agent": "41-3011",
	"insurance agent":         "41-3021",
	"insurance sales agent":   "41-3021",
	"stockbroker":             "41-3031",
	"financial sales agent":   "41-3031",
	"travel agent":            "41-3041",
	"sales representative":    "41-4012",
	"sales rep":               "41-4012",
	"account executive":       "41-4012",
	"salesperson":             "41-4012",
	"product promoter":        "41-9011",
	"model":                   "41-9012",
	"real estate broker":      "41-9021",
	"real estate agent":       "41-9022",
	"realtor":                 "41-9022",
	"sales engineer":          "41-9031",
	"telemarketer":            "41-9041",
	"street vendor":           "41-9091",

	// office and administrative support
	"office manager":                  "43-1011",
	"switchboard operator":            "43-2011",
	"telephone operator":              "43-2021",
	"bill collector":                  "43-3011",
	"debt collector":                  "43-3011",
	"billing clerk":                   "43-3021",
	"bookkeeper":                      "43-3031",
	"accounting clerk":                "43-3031",
	"payroll clerk":                   "43-3051",
	"payroll specialist":              "43-3051",
	"procurement clerk":               "43-3061",
	"bank teller":                     "43-3071",
	"teller":                          "43-3071",
	"court clerk":                     "43-4031",
	"customer service representative": "43-4051",
	"customer service":                "43-4051",
	"customer support":                "43-4051",
	"call center agent":               "43-4051",
	"call center representative":      "43-4051",
	"file clerk":                      "43-4071",
	"front desk clerk":                "43-4081",
	"hotel clerk":                     "43-4081",
	"library assistant":               "43-4121",
	"loan processor":                  "43-4131",
	"hr assistant":                    "43-4161",
	"human resources assistant":       "43-4161",
	"receptionist":                    "43-4171",
	"911 dispatcher":                  "43-5031",
	"police dispatcher":               "43-5031",
	"dispatcher":                      "43-5032",
	"postal clerk":                    "43-5051",
	"mail carrier":                    "43-5052",
	"mailman":                         "43-5052",
	"postal worker":                   "43-5052",
	"production planner":              "43-5061",
	"expediter":                       "43-5061",
	"shipping clerk":                  "43-5071",
	"inventory clerk":                 "43-5071",
	"executive assistant":             "43-6011",
	"legal secretary":                 "43-6012",
	"medical secretary":               "43-6013",
	"administrative assistant":        "43-6014",
	"admin assistant":                 "43-6014",
	"secretary":                       "43-6014",
	"office assistant":                "43-6014",
	"data entry":                      "43-9021",
	"data entry clerk":                "43-9021",
	"data entry keyer":                "43-9021",
	"typist":                          "43-9022",
	"word processor":                  "43-9022",
	"insurance claims clerk":          "43-9041",
	"office clerk":                    "43-9061",
	"clerk":                           "43-9061",
	"proofreader":                     "43-9081",

	// farming
	"agricultural inspector": "45-2011",
	"farmworker":             "45-2092",
	"farm worker":            "45-2092",
	"farm laborer":           "45-2092",
	"fisherman":              "45-3031",
	"fisher":                 "45-3031",
	"logger":                 "45-4022",
	"lumberjack":             "45-4022",

	// construction
	"construction supervisor":  "47-1011",
	"foreman":                  "47-1011",
	"bricklayer":               "47-2021",
	"mason":                    "47-2021",
	"carpenter":                "47-2031",
	"tile setter":              "47-2044",
	"construction worker":      "47-2061",
	"construction laborer":     "47-2061",
	"heavy equipment operator": "47-2073",
	"drywall installer":        "47-2081",
	"electrician":              "47-2111",
	"glazier":                  "47-2121",
	"painter":                  "47-2141",
	"plumber":                  "47-2152",
	"pipefitter":               "47-2152",
	"roofer":                   "47-2181",
	"ironworker":               "47-2221",
	"solar installer":          "47-2231",
	"building inspector":       "47-4011",
	"elevator installer":       "47-4021",
	"elevator mechanic":        "47-4021",

	// installation, maintenance, repair
	"computer repair technician":    "49-2011",
	"telecommunications technician": "49-2022",
	"aircraft mechanic":             "49-3011",
	"auto mechanic":                 "49-3023",
	"mechanic":                      "49-3023",
	"car mechanic":                  "49-3023",
	"automotive technician":         "49-3023",
	"diesel mechanic":               "49-3031",
	"motorcycle mechanic":           "49-3052",
	"small engine mechanic":         "49-3053",
	"bicycle mechanic":              "49-3091",
	"hvac technician":               "49-9021",
	"hvac mechanic":                 "49-9021",
	"appliance repair technician":   "49-9031",
	"industrial mechanic":           "49-9041",
	"millwright":                    "49-9041",
	"lineman":                       "49-9051",
	"line installer":                "49-9051",
	"maintenance technician":        "49-9071",
	"maintenance worker":            "49-9071",
	"handyman":                      "49-9071",
	"wind turbine technician":       "49-9081",
	"locksmith":                     "49-9094",

	// production
	"production supervisor":      "51-1011",
	"assembler":                  "51-2092",
	"assembly line worker":       "51-2092",
	"factory worker":             "51-2092",
	"baker":                      "51-3011",
	"butcher":                    "51-3021",
	"meat packer":                "51-3023",
	"machinist":                  "51-4041",
	"welder":                     "51-4121",
	"printing press operator":    "51-5112",
	"laundry worker":             "51-6011",
	"dry cleaner":                "51-6011",
	"sewing machine operator":    "51-6031",
	"seamstress":                 "51-6052",
	"tailor":                     "51-6052",
	"cabinetmaker":               "51-7011",
	"woodworker":                 "51-7011",
	"power plant operator":       "51-8013",
	"water treatment operator":   "51-8031",
	"chemical plant operator":    "51-8091",
	"quality control inspector":  "51-9061",
	"quality inspector":          "51-9061",
	"jeweler":                    "51-9071",
	"dental lab technician":      "51-9081",
	"packaging machine operator": "51-9111",
	"cnc operator":               "51-9161",
	"cnc machinist":              "51-9161",

	// transportation
	"pilot":                  "53-2011",
	"airline pilot":          "53-2011",
	"commercial pilot":       "53-2012",
	"air traffic controller": "53-2021",
	"flight attendant":       "53-2031",
	"route sales driver":     "53-3031",
	"truck driver":           "53-3032",
	"trucker":                "53-3032",
	"long haul truck driver": "53-3032",
	"delivery driver":        "53-3033",
	"courier":                "53-3033",
	"school bus driver":      "53-3051",
	"bus driver":             "53-3052",
	"chauffeur":              "53-3053",
	"shuttle driver":         "53-3053",
	"taxi driver":            "53-3054",
	"cab driver":             "53-3054",
	"uber driver":            "53-3054",
	"rideshare driver":       "53-3054",
	"locomotive engineer":    "53-4011",
	"train engineer":         "53-4011",
	"train conductor":        "53-4031",
	"sailor":                 "53-5011",
	"deckhand":               "53-5011",
	"ship captain":           "53-5021",
	"parking attendant":      "53-6021",
	"valet":                  "53-6021",
	"crane operator":         "53-7021",
	"forklift operator":      "53-7051",
	"forklift driver":        "53-7051",
	"warehouse worker":       "53-7062",
	"material handler":       "53-7062",
	"mover":                  "53-7062",
	"packer":                 "53-7064",
	"stocker":                "53-7065",
	"stock clerk":            "53-7065",
	"order picker":           "53-7065",

	// military
	"military officer": "55-1019",
	"soldier":          "55-3019",
}

var referenceList = mustTitleTables()

// StandardTitle returns the SOC title for a code known to the static table.
func StandardTitle(code string) (string, bool) {
	title, ok := standardTitles[code]
	return title, ok
}

// ReferenceOccupations returns the reference occupation list sorted by code.
func ReferenceOccupations() []Reference {
	out := make([]Reference, len(referenceList))
	copy(out, referenceList)
	return out
}

// Aliases returns a copy of the alias table keyed by collapsed title.
func Aliases() map[string]string {
	out := make(map[string]string, len(titleAliases))
	for alias, code := range titleAliases {
		out[alias] = code
	}
	return out
}

func mustTitleTables() []Reference {
	refs := make([]Reference, 0, len(standardTitles))
	for code, title := range standardTitles {
		if !ValidCode(code) {
			panic(fmt.Sprintf("occupation: malformed code %q in title table", code))
		}
		if _, ok := prefixCategories[code[:2]]; !ok {
			panic(fmt.Sprintf("occupation: code %s has no category prefix", code))
		}
		refs = append(refs, Reference{Code: code, Title: title})
	}
	for alias, code := range titleAliases {
		if _, ok := standardTitles[code]; !ok {
			panic(fmt.Sprintf("occupation: alias %q points at unknown code %s", alias, code))
		}
		if collapse(alias) != alias {
			panic(fmt.Sprintf("occupation: alias %q is not in collapsed form", alias))
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Code < refs[j].Code })
	return refs
}
